package bigint

import (
	"fmt"

	"github.com/fractio/bigkernel/kernelerr"
)

// domainErr wraps kernelerr.ErrDomain with a call-site message, for the
// void operations that panic on a domain violation rather than returning
// an error (spec.md §7: "Domain and DivByZero are fatal and terminate").
func domainErr(msg string) error {
	return fmt.Errorf("bigint: %s: %w", msg, kernelerr.ErrDomain)
}
