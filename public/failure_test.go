package public

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	xgxboundary "github.com/xgx-io/xgx-boundary"
	"github.com/xgx-io/xgx-boundary/internal/origin"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func raise(t *testing.T, opts ...Option) PublicFailure {
	t.Helper()
	v, err := RaisePublicFailure(opts...)
	require.Error(t, err)
	require.Zero(t, v)

	var pub PublicFailure
	require.True(t, errors.As(err, &pub), "got %T", err)
	return pub
}

func TestRaisePublicFailure_EndToEnd(t *testing.T) {
	t.Parallel()

	pub := raise(t)
	assert.Equal(t, "Public Error: FooBar", pub.Error())
	assert.Equal(t, VariantFredBob, pub.Variant())
	assert.Equal(t, xgxboundary.LayerPublic, pub.Layer())
	assert.False(t, xgxboundary.Exposed(pub))

	var fb origin.FooBar
	require.True(t, errors.As(pub, &fb))
	assert.Equal(t, "This is my internal error.", fb.Error())
	assert.True(t, xgxboundary.HasVariant(pub, origin.VariantFooBar))
}

func TestFredBob_CloneSharesCause(t *testing.T) {
	t.Parallel()

	pub := raise(t)
	h := pub.(FredBob).Handle()
	require.EqualValues(t, 1, h.Refs())

	dup := pub.Clone()
	assert.EqualValues(t, 2, h.Refs())
	assert.True(t, h.Same(dup.(FredBob).Handle()))
	assert.Same(t, pub.Trace(), dup.Trace())
	assert.Equal(t, pub.Error(), dup.Error())
	assert.Equal(t, fmt.Sprintf("%+v", pub), fmt.Sprintf("%+v", dup))

	assert.False(t, dup.Release())
	assert.EqualValues(t, 1, h.Refs())
	assert.NotNil(t, pub.Cause())
}

func TestFredBob_ReleasedRendersPlaceholder(t *testing.T) {
	t.Parallel()

	pub := raise(t)
	dup := pub.Clone()
	assert.False(t, pub.Release())
	assert.True(t, dup.Release())

	assert.Nil(t, dup.Cause())
	assert.Equal(t, "Public Error: <released>", dup.Error())
}

func TestFredBob_ForeignCauseUsesMessage(t *testing.T) {
	t.Parallel()

	f := FredBob{cause: xgxboundary.NewHandle(errors.New("disk full"))}
	assert.Equal(t, "Public Error: disk full", f.Error())
	assert.Nil(t, f.Trace())
}

func TestFredBob_ZeroValue(t *testing.T) {
	t.Parallel()

	var f FredBob
	assert.Equal(t, "Public Error: <released>", f.Error())
	assert.Nil(t, f.Cause())
	assert.False(t, f.Release())
	assert.Nil(t, f.Clone().Cause())
}

func TestFredBob_InteropWithPkgErrors(t *testing.T) {
	t.Parallel()

	pub := raise(t)
	wrapped := pkgerrors.Wrap(pub, "handler")

	assert.Equal(t, "handler: Public Error: FooBar", wrapped.Error())
	assert.Equal(t, VariantFredBob, xgxboundary.VariantOf(wrapped))
	_, isFooBar := pkgerrors.Cause(wrapped).(origin.FooBar)
	assert.True(t, isFooBar, "pkg/errors.Cause must reach the internal failure")
}

func TestFredBob_VerboseFormat(t *testing.T) {
	t.Parallel()

	pub := raise(t)
	got := fmt.Sprintf("%+v", pub)

	assert.True(t, strings.HasPrefix(got, `variant=FredBob layer=public msg="Public Error: FooBar"`), got)
	assert.Contains(t, got, `cause: variant=FooBar layer=internal msg="This is my internal error."`)
	assert.Contains(t, got, "origin.Compute")
	assert.True(t, strings.HasSuffix(got, "stack: shared with cause"), got)
	assert.Equal(t, `"Public Error: FooBar"`, fmt.Sprintf("%q", pub))
}

func TestRaisePublicFailure_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := raise(t), raise(t)
	assert.Equal(t, a.Error(), b.Error())
	assert.Equal(t, a.Variant(), b.Variant())
	assert.False(t, a.(FredBob).Handle().Same(b.(FredBob).Handle()))
}
