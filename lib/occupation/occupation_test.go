package occupation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleData = `College Degree|Detailed Occupation|Description|Mean Hourly Wage|Mean Annual Wage
Nursing|Registered Nurses|Assess patient health problems and needs.|39.78|82750
Accounting|Accountants and Auditors|Examine financial records.|37.14|77250
Computer Science|Software Developers|Design computer applications.|61.18|127260
Accounting|Tax Preparers|Prepare tax returns.|25.01|52020
`

func writeSample(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "occupational_data.csv")
	err := os.WriteFile(path, []byte(sampleData), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadSortsByDegree(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	require.Equal(t, 4, tbl.NumRows())
	require.Equal(t, "Accounting", tbl.Value(DegreeColumn, 0))
	require.Equal(t, "Accounting", tbl.Value(DegreeColumn, 1))
	require.Equal(t, "Computer Science", tbl.Value(DegreeColumn, 2))
	require.Equal(t, "Nursing", tbl.Value(DegreeColumn, 3))

	// numeric columns parse as numbers
	require.Equal(t, float64(82750), tbl.Value("Mean Annual Wage", 3))
}

func TestDegrees(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	require.Equal(t, []string{"Accounting", "Computer Science", "Nursing"}, Degrees(tbl))
}

func TestFindByDegree(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	rows, err := FindByDegree(tbl, "Accounting")
	require.NoError(t, err)
	require.Equal(t, 2, rows.NumRows())
	require.Equal(t, "Accountants and Auditors", rows.Value("Detailed Occupation", 0))

	miss, err := FindByDegree(tbl, "Alchemy")
	require.NoError(t, err)
	require.Equal(t, 0, miss.NumRows())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
