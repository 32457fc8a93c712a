package verbs

import (
	"github.com/sambacha/jgo/internal/token"
)

// boxingVerbs is empty: the box/open pair share their glyphs (<, >) with
// the relational comparisons and are registered by relationalVerbs so a
// single *token.Verb carries both the comparison dyad and the boxing
// monad under one name.
func boxingVerbs() []*token.Verb {
	return nil
}
