package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

var sample = []lead.Lead{
	{
		Name:     "Acme Plumbing",
		Category: "plumbers",
		Rating:   "4.5",
		Email:    "info@acme.example",
		Phone:    "555-0100",
		Website:  "https://acme.example",
		Address:  "1 High St, Leeds",
		Facebook: "https://facebook.com/acme",
	},
	{Name: "Bravo Bakery", Category: "bakers", Rating: "N/A"},
}

func TestWriteCSVColumnOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	expected := "name,category,rating,email,phone,website,address,facebook,instagram,linkedin,twitter\n" +
		"Acme Plumbing,plumbers,4.5,info@acme.example,555-0100,https://acme.example,\"1 High St, Leeds\",https://facebook.com/acme,,,\n" +
		"Bravo Bakery,bakers,N/A,,,,,,,,\n"
	require.Equal(t, expected, buf.String())
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	require.Equal(t, "name", sheet.Rows[0].Cells[0].Value)
	require.Equal(t, "Acme Plumbing", sheet.Rows[1].Cells[0].Value)
	require.Equal(t, "4.5", sheet.Rows[1].Cells[2].Value)
	require.Equal(t, "https://facebook.com/acme", sheet.Rows[1].Cells[7].Value)
	require.Equal(t, "Bravo Bakery", sheet.Rows[2].Cells[0].Value)
}
