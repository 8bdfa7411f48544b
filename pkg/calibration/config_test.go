package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattctl/poet/pkg/control"
)

func writeTempCalibration(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "calibration.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidCalibration(t *testing.T) {
	path := writeTempCalibration(t, `
goal: 1.5
constraint_type: PERFORMANCE
period: 10
buffer_depth: 64
states:
  - speedup: 0
    cost: 0
    idle_partner_id: 1
  - speedup: 1
    cost: 1
  - speedup: 2
    cost: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Goal)
	assert.Equal(t, control.Performance, cfg.Constraint())
	assert.Len(t, cfg.Table(), 3)
}

func TestLoadRejectsUnknownConstraintType(t *testing.T) {
	path := writeTempCalibration(t, `
goal: 1.5
constraint_type: BOGUS
period: 10
states:
  - speedup: 1
    cost: 1
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsIdlePartnerPointingAtAnotherIdleEntry(t *testing.T) {
	path := writeTempCalibration(t, `
goal: 1.5
constraint_type: PERFORMANCE
period: 10
states:
  - speedup: 0
    cost: 0
    idle_partner_id: 1
  - speedup: 0
    cost: 0
    idle_partner_id: 0
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeIdlePartner(t *testing.T) {
	path := writeTempCalibration(t, `
goal: 1.5
constraint_type: PERFORMANCE
period: 10
states:
  - speedup: 0
    cost: 0
    idle_partner_id: 5
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUncheckedSkipsValidation(t *testing.T) {
	path := writeTempCalibration(t, `
goal: 1.5
constraint_type: BOGUS
period: 10
states: []
`)

	cfg, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, "BOGUS", cfg.ConstraintType)
}
