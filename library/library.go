// Package library stores named note tables.
package library

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jsphweid/buzzer/score"
)

var ErrNotFound = errors.New("melody not found")

type Store interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*score.Table, error)
	Put(ctx context.Context, t *score.Table) error
	Delete(ctx context.Context, name string) error
}

// names double as file names and keys, so keep them boring
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid melody name %q", name)
	}
	return nil
}
