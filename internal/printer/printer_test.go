package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %d", 2)
	p.Infof("nothing to do")
	p.Warnf("careful")
	p.Errorf("broke")
	p.Printf("  plain")

	assert.Equal(t, "✔ saved 2\n• nothing to do\n● careful\n✘ broke\n  plain\n", ansi.Strip(buf.String()))
}

func TestCtx_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
