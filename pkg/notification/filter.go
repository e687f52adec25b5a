package notification

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// Filter is one positional entry of the "filters" list: either a clause
// carrying a "field" discriminator or an {"operator": "OR"} marker.
type Filter map[string]any

// Field returns the clause discriminator, empty for operator markers.
func (f Filter) Field() string {
	s, _ := f[fields.FilterField].(string)
	return s
}

// IsOr reports whether f is the OR marker.
func (f Filter) IsOr() bool {
	op, _ := f[fields.FilterOperator].(string)
	return op == fields.OperatorOr
}

// Tag is a legacy "tags" entry. It is normalized into a tag filter clause.
type Tag struct {
	Key      string `json:"key" yaml:"key"`
	Relation string `json:"relation" yaml:"relation"`
	Value    string `json:"value" yaml:"value"`
}

func (t Tag) filter() Filter {
	return Filter{
		fields.FilterField:    fields.FieldTag,
		fields.FilterKey:      t.Key,
		fields.FilterRelation: t.Relation,
		fields.FilterValue:    t.Value,
	}
}

var tagComparisons = []string{
	fields.RelationGreater,
	fields.RelationLess,
	fields.RelationEqual,
	fields.RelationNotEqual,
	fields.RelationExists,
	fields.RelationNotExists,
	fields.RelationTimeElapsedGreat,
	fields.RelationTimeElapsedLess,
}

func validTagRelation(relation string) error {
	if !slices.Contains(tagComparisons, relation) {
		return fmt.Errorf("%w: %q", ErrInvalidRelation, relation)
	}
	return nil
}

// normalizeTags accepts the shapes the legacy "tags" attribute has been
// written with and converts them into tag filter clauses.
func normalizeTags(value any) ([]Filter, error) {
	switch v := value.(type) {
	case Tag:
		return []Filter{v.filter()}, nil
	case []Tag:
		out := make([]Filter, 0, len(v))
		for _, t := range v {
			out = append(out, t.filter())
		}
		return out, nil
	case map[string]any:
		f, err := tagFromMap(v)
		if err != nil {
			return nil, err
		}
		return []Filter{f}, nil
	case map[string]string:
		return []Filter{Tag{Key: v[fields.FilterKey], Relation: v[fields.FilterRelation], Value: v[fields.FilterValue]}.filter()}, nil
	case []map[string]string:
		out := make([]Filter, 0, len(v))
		for _, m := range v {
			out = append(out, Tag{Key: m[fields.FilterKey], Relation: m[fields.FilterRelation], Value: m[fields.FilterValue]}.filter())
		}
		return out, nil
	case []map[string]any:
		out := make([]Filter, 0, len(v))
		for _, m := range v {
			f, err := tagFromMap(m)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	case []any:
		out := make([]Filter, 0, len(v))
		for _, item := range v {
			fs, err := normalizeTags(item)
			if err != nil {
				return nil, err
			}
			out = append(out, fs...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidTags, value)
	}
}

func tagFromMap(m map[string]any) (Filter, error) {
	f := Filter{fields.FilterField: fields.FieldTag}
	for _, k := range []string{fields.FilterKey, fields.FilterRelation, fields.FilterValue} {
		v, ok := m[k]
		if !ok {
			continue
		}
		f[k] = v
	}
	if _, ok := f[fields.FilterKey]; !ok {
		return nil, fmt.Errorf("%w: tag without key", ErrInvalidTags)
	}
	return f, nil
}

// normalizeFilters converts a raw "filters" value into clause form.
func normalizeFilters(value any) ([]Filter, error) {
	switch v := value.(type) {
	case []Filter:
		return cloneValue(v).([]Filter), nil
	case []map[string]any:
		out := make([]Filter, 0, len(v))
		for _, m := range v {
			out = append(out, Filter(cloneValue(m).(map[string]any)))
		}
		return out, nil
	case []any:
		out := make([]Filter, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case Filter:
				out = append(out, m)
			case map[string]any:
				out = append(out, Filter(m))
			default:
				return nil, fmt.Errorf("%w: entry %T", ErrInvalidFilters, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidFilters, value)
	}
}
