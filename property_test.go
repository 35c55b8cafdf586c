package xgxboundary

import (
	"errors"
	"fmt"
	"testing"
	"testing/quick"
)

func TestQuickConvertKeepsOriginalAsCause(t *testing.T) {
	b := newTestBoundary()
	property := func(msg string) bool {
		in := lowFailure{msg: msg}
		out := b.Convert(in)
		return errors.Is(out, in) && out.cause.Refs() == 1 && out.Error() == "high: Low"
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("convert must keep the original as its only cause: %v", err)
	}
}

func TestQuickDuplicatesRenderIdentically(t *testing.T) {
	b := newTestBoundary(WithTracePolicy(TraceOmit))
	property := func(msg string, n uint8) bool {
		out := b.Convert(lowFailure{msg: msg})
		count := int(n%16) + 1
		dups := make([]highFailure, 0, count)
		for i := 0; i < count; i++ {
			dups = append(dups, highFailure{cause: out.cause.Clone(), trace: out.trace})
		}
		if out.cause.Refs() != int64(count+1) {
			return false
		}
		for _, d := range dups {
			if fmt.Sprintf("%+v", d) != fmt.Sprintf("%+v", out) {
				return false
			}
			d.cause.Release()
		}
		return out.cause.Refs() == 1
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("duplicates must render like the original: %v", err)
	}
}

func TestQuickForeignCauseRendersItsMessage(t *testing.T) {
	property := func(msg string) bool {
		if msg == "" {
			return true
		}
		out := highFailure{cause: NewHandle(errors.New(msg))}
		return out.Error() == "high: "+msg && VariantOf(out) == variantHigh
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("foreign causes must render their message: %v", err)
	}
}
