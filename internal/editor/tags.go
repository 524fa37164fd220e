package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxTagLength = 20

var (
	ErrEmptyTag     = errors.New("tag must not be empty")
	ErrTagTooLong   = fmt.Errorf("tag must be at most %d characters", MaxTagLength)
	ErrDuplicateTag = errors.New("tag already present")
)

// ValidateTag checks tag against the tags already present. Duplicates are
// found case-insensitively.
func ValidateTag(tag string, existing []string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return fmt.Errorf("%w: %q", ErrTagTooLong, tag)
	}
	for _, other := range existing {
		if strings.EqualFold(other, tag) {
			return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
		}
	}
	return nil
}

func (d *RecipeDraft) AddTag(tag string) error {
	if err := ValidateTag(tag, d.Tags); err != nil {
		return err
	}
	d.Tags = append(d.Tags, strings.TrimSpace(tag))
	return nil
}

func (d *RecipeDraft) RemoveTag(tag string) {
	kept := make([]string, 0, len(d.Tags))
	for _, existing := range d.Tags {
		if !strings.EqualFold(existing, strings.TrimSpace(tag)) {
			kept = append(kept, existing)
		}
	}
	d.Tags = kept
}

// SetTags replaces the tags with the valid entries of tags. The first
// rejected entry is reported; the valid ones are kept either way.
func (d *RecipeDraft) SetTags(tags []string) error {
	kept := make([]string, 0, len(tags))
	var first error
	for _, tag := range tags {
		if err := ValidateTag(tag, kept); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		kept = append(kept, strings.TrimSpace(tag))
	}
	d.Tags = kept
	return first
}
