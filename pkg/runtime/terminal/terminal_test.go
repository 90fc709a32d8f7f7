package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/app"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/config"
)

func openApp(ctx context.Context, path string) (*app.App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

func writeFixtures(t *testing.T) (configPath, csvPath string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "jyotish.yaml")
	profilesPath := filepath.Join(dir, "profiles.ini")
	cfg := fmt.Sprintf(`
database:
  path: %q
ephemeris:
  tropical: false
profiles:
  path: %q
`, filepath.Join(dir, "jyotish.db"), profilesPath)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))
	require.NoError(t, os.WriteFile(profilesPath, []byte(`
[ravi]
birth = 2000-01-01 17:30
timezone = Asia/Colombo
latitude = 6.9271
longitude = 79.8612
`), 0o600))

	csvPath = filepath.Join(dir, "moon.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(`body,julian_day,longitude
Moon,2451544.5,44
Moon,2451545.5,46
`), 0o600))
	return configPath, csvPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Open: openApp, Output: &out})
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_ImportThenCalculate(t *testing.T) {
	configPath, csvPath := writeFixtures(t)

	// Given Moon samples imported from CSV
	out, err := run(t, "-c", configPath, "ephemeris", "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 samples")

	out, err = run(t, "-c", configPath, "ephemeris", "coverage")
	require.NoError(t, err)
	assert.Contains(t, out, "Moon: JD 2451544.50 to 2451545.50 (2 samples)")

	// When the dasha is calculated for a birth inside the sampled range
	out, err = run(t, "-c", configPath, "dasha", "--date", "2000-01-01", "--time", "12:00", "--level", "2")

	// Then the Moon sits in Rohini and the table lists the periods
	require.NoError(t, err)
	assert.Contains(t, out, "Moon nakshatra: Rohini")
	assert.Contains(t, out, "| Moon")
	assert.Contains(t, out, "Antardasha")
	assert.Contains(t, out, "Total periods: 100")

	// And the profile resolves to the same instant
	out, err = run(t, "-c", configPath, "dasha", "--profile", "ravi", "--level", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Total periods: 10")

	// And both calculations are in the history
	out, err = run(t, "-c", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, string(domain.CalculationDasha))
	assert.Contains(t, out, "ravi")
}

func TestCLI_Nakshatra(t *testing.T) {
	configPath, _ := writeFixtures(t)

	out, err := run(t, "-c", configPath, "nakshatra", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Nakshatra: Magha (#10), pada 1")
	assert.Contains(t, out, "Lord: Ketu")

	_, err = run(t, "-c", configPath, "nakshatra", "north")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCLI_Profiles(t *testing.T) {
	configPath, _ := writeFixtures(t)

	out, err := run(t, "-c", configPath, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "ravi: 2000-01-01 17:30 Asia/Colombo")
}

func TestCLI_DashaOutsideSamples(t *testing.T) {
	configPath, _ := writeFixtures(t)

	_, err := run(t, "-c", configPath, "dasha", "--date", "1990-05-15", "--time", "09:00")
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestCLI_DashaFlags(t *testing.T) {
	configPath, _ := writeFixtures(t)

	_, err := run(t, "-c", configPath, "dasha")
	assert.Error(t, err)

	_, err = run(t, "-c", configPath, "dasha", "--profile", "ravi", "--date", "2000-01-01", "--time", "12:00")
	assert.Error(t, err)
}
