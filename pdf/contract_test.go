package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 PNG, the smallest image the signature pad could plausibly emit
const testPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func testData() ContractData {
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return ContractData{
		ContractNumber:     "HC-ABCD1234",
		BusinessName:       "Helping Hands Home Care",
		AgentName:          "Maria Lopez",
		ClientName:         "John Smith",
		ClientEmail:        "john@example.com",
		ClientPhone:        "+15551234567",
		ClientAddress:      "12 Oak Lane",
		City:               "Springfield",
		ServiceName:        "Personal Care",
		ServiceDescription: "Assistance with daily living activities.",
		StartDate:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            &end,
		StartTime:          "09:00",
		EndTime:            "17:00",
		HoursPerDay:        8,
		TotalPrice:         400,
		PaymentMethods: []PaymentMethodLine{
			{Label: "Company Zelle (zelle)", Details: []string{"email: pay@example.com"}},
			{Label: "Cash (cash)"},
		},
	}
}

func TestRenderContractContainsLiteralFields(t *testing.T) {
	out, err := RenderContract(testData())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))

	text := string(out)
	for _, want := range []string{
		"HOME CARE SERVICE AGREEMENT",
		"HC-ABCD1234",
		"John Smith",
		"john@example.com",
		"+15551234567",
		"Personal Care",
		"$400.00",
		"Company Zelle (zelle)",
		"email: pay@example.com",
		"Maria Lopez",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRenderContractUnsignedHasNoImages(t *testing.T) {
	out, err := RenderContract(testData())
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(string(out), "/Subtype /Image"))
}

func TestRenderContractEmbedsBothSignatures(t *testing.T) {
	data := testData()
	data.Signatures = &Signatures{Client: testPNG, Admin: testPNG}

	out, err := RenderContract(data)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "/Subtype /Image"))
}

func TestRenderContractFallsBackOnBadSignature(t *testing.T) {
	data := testData()
	data.Signatures = &Signatures{
		Client: "data:image/png;base64,not-actually-base64!!!",
		Admin:  "data:text/plain;base64,aGVsbG8=",
	}

	out, err := RenderContract(data)
	require.NoError(t, err, "an unusable signature image must degrade, not fail the render")
	assert.Equal(t, 0, strings.Count(string(out), "/Subtype /Image"))
}

func TestDocWriterPaginates(t *testing.T) {
	w := NewDocWriter()
	for i := 0; i < 200; i++ {
		w.WriteLine("line", "", bodyFontSize)
	}
	out, err := w.Output()
	require.NoError(t, err)

	// the page tree node plus at least two page objects
	assert.GreaterOrEqual(t, strings.Count(string(out), "/Type /Page"), 3)
}

func TestDecodeDataURI(t *testing.T) {
	raw, imgType, err := decodeDataURI(testPNG)
	require.NoError(t, err)
	assert.Equal(t, "PNG", imgType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])

	_, _, err = decodeDataURI("http://example.com/sig.png")
	assert.Error(t, err)

	_, _, err = decodeDataURI("data:image/tiff;base64,AAAA")
	assert.Error(t, err)
}
