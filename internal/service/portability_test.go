package service_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/PradipLalpura/RexOS/internal/service"
)

func TestExportImportSnapshot(t *testing.T) {
	t.Parallel()
	state := newFixtureState(t)
	var buf bytes.Buffer
	if err := service.ExportSnapshot(&buf, state); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), service.SnapshotFormat) {
		t.Fatalf("expected format marker in export")
	}

	imported, err := service.ImportSnapshot(buf.Bytes())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(state, imported) {
		t.Fatalf("imported state differs from exported state")
	}
}

func TestImportSnapshotAcceptsBareDocument(t *testing.T) {
	t.Parallel()
	doc := `{"isRegistered":true,"currentStep":4,"profile":{"name":"Rex","weight":80,"height":180,"createdAt":""},"habits":[],"workoutPlan":null,"dietTargets":null,"habitRecords":[],"workoutLogs":[],"dietLogs":[],"notes":[]}`
	s, err := service.ImportSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !s.IsRegistered || s.Profile == nil || s.Profile.Name != "Rex" {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestImportSnapshotRejectsBadInput(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "[]", `{"format":"other.v9","state":{}}`} {
		if _, err := service.ImportSnapshot([]byte(in)); err == nil {
			t.Fatalf("expected %q to fail", in)
		}
	}
}
