package display

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sambacha/jgo/internal/jarray"
)

// TestRenderSnapshots locks down the exact text a session echoes back for
// a handful of representative shapes, the way a REPL transcript golden
// file would.
func TestRenderSnapshots(t *testing.T) {
	vec := jarray.NewIntVector([]int{1, -22, 3})
	mat, err := jarray.Reshape([]int{2, 3}, jarray.NewIntVector([]int{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatal(err)
	}
	boxed := jarray.NewBox(jarray.NewCharVector("hi"))

	snaps.MatchSnapshot(t, "int_vector", Render(vec))
	snaps.MatchSnapshot(t, "int_matrix", Render(mat))
	snaps.MatchSnapshot(t, "boxed_char", Render(boxed))
}
