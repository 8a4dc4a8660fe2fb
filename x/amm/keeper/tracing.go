package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// startSpan opens a span named "amm.<operation>" and returns a context
// carrying it.
func (k Keeper) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	attrs = append(attrs, attribute.Int64("block_height", sdkCtx.BlockHeight()))
	spanCtx, span := k.tracer.Start(sdkCtx.Context(), types.ModuleName+"."+operation, trace.WithAttributes(attrs...))
	return sdkCtx.WithContext(spanCtx), span
}

// endSpan records err, if any, and ends span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
