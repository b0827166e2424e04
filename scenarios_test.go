package hidreport

import (
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type scenarioFixture struct {
	Name         string `yaml:"name"`
	Hex          string `yaml:"hex"`
	InputReports int    `yaml:"inputReports"`
	InputBits    uint32 `yaml:"inputBits"`
	FieldCount   int    `yaml:"fieldCount"`
}

func loadScenarios(t *testing.T) []scenarioFixture {
	t.Helper()
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var fixtures []scenarioFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	return fixtures
}

// TestScenarios parses every fixture in testdata/scenarios.yaml and checks
// the aggregate shape of the result against the fixture's expectations,
// rather than re-asserting the field-by-field detail TestParseBootMouse
// and TestParseTwoReportIDs already cover.
func TestScenarios(t *testing.T) {
	for _, fixture := range loadScenarios(t) {
		fixture := fixture
		t.Run(fixture.Name, func(t *testing.T) {
			cleaned := strings.Join(strings.Fields(fixture.Hex), "")
			data, err := hex.DecodeString(cleaned)
			require.NoError(t, err)

			desc, err := Parse(data)
			require.NoError(t, err)
			require.Len(t, desc.Input, fixture.InputReports)

			var totalBits uint32
			var totalFields int
			for _, report := range desc.Input {
				totalBits += report.Size
				totalFields += len(report.Fields)
			}
			require.Equal(t, fixture.InputBits, totalBits)
			require.Equal(t, fixture.FieldCount, totalFields)
		})
	}
}
