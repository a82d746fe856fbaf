package ctxutil

import (
	"context"
	"testing"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t-1", RequestID: "r-1"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t-1" || td.RequestID != "r-1" {
		t.Fatalf("GetTraceData: unexpected %+v", td)
	}
	fields := LogFields(ctx)
	if len(fields) != 4 || fields[1] != "t-1" || fields[3] != "r-1" {
		t.Fatalf("LogFields: unexpected %v", fields)
	}
	if GetTraceData(context.Background()) != nil {
		t.Fatalf("GetTraceData: expected nil without trace data")
	}
}
