package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/pixu/pkg/models"
	"github.com/yurifrl/pixu/pkg/parser"
)

const scenario = "Bradesco João Silva PIX CPF 123.456.789-00 AG 1234 CC 98765-0 R$ 1.234,56"

func extract(t *testing.T, text string) *parser.Result {
	t.Helper()
	return parser.New(log.New(io.Discard)).Extract(text)
}

func render(t *testing.T, format Format, labels Labels, rep Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(format, labels).Render(&buf, rep))
	return buf.String()
}

func TestTextEnglish(t *testing.T) {
	rep := FromResult(extract(t, scenario), nil)

	expected := "Bank: Bradesco\n" +
		"Name: João Silva\n" +
		"Pix Key: 123.456.789-00\n" +
		"Branch: 1234\n" +
		"Account: 98765-0\n" +
		"Amount (R$): R$ 1.234,56\n" +
		strings.Repeat("-", 40) + "\n" +
		"\nTransactions: 1\n"
	assert.Equal(t, expected, render(t, FormatText, English, rep))
}

func TestTextPortugueseSentinels(t *testing.T) {
	rep := FromResult(extract(t, "Basa Rui Costa PIX R$ 7,50"), nil)

	expected := "Banco: Basa\n" +
		"Nome: Rui Costa\n" +
		"Chave Pix: Não informado\n" +
		"Agência: Não informada\n" +
		"Conta: Não informada\n" +
		"Valor (R$): R$ 7,50\n" +
		strings.Repeat("-", 40) + "\n" +
		"\nContas Pix: 1\n"
	assert.Equal(t, expected, render(t, FormatText, Portuguese, rep))
}

func TestTextEmpty(t *testing.T) {
	rep := FromResult(extract(t, "nothing to see"), nil)
	assert.Equal(t, "\nTransactions: 0\n", render(t, FormatText, English, rep))
}

func TestPretty(t *testing.T) {
	res := extract(t, "Itaú Ana PIX CPF 111 R$ 100,00\nSantander Bia PIX R$ 1,234.56")
	out := render(t, FormatPretty, English, FromResult(res, nil))

	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "R$ 100,00")
	assert.Contains(t, out, "1,234.56")
	assert.Contains(t, out, "Transactions:")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "amount")
}

func TestJSON(t *testing.T) {
	res := extract(t, scenario+"\nNubank Bia PIX R$ 1,234.56")
	out := render(t, FormatJSON, English, FromResult(res, nil))

	var v ReportView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Transfers, 2)
	assert.Equal(t, "Bradesco", v.Transfers[0].Bank)
	assert.Equal(t, "tax_id", v.Transfers[0].KeyType)
	assert.Equal(t, "1234.56", v.Transfers[0].Amount)
	assert.True(t, v.Transfers[0].Valid)
	assert.Equal(t, "", v.Transfers[1].Amount)
	assert.False(t, v.Transfers[1].Valid)
	assert.Equal(t, "unknown", v.Transfers[1].Key)
	assert.Equal(t, 2, v.Summary.TotalCount)
	assert.Equal(t, "1234.56", v.Summary.TotalAmount)
	assert.Equal(t, "R$ 1.234,56", v.Summary.TotalDisplay)
	require.Len(t, v.Diagnostics, 1)
	assert.Equal(t, 1, v.Diagnostics[0].Block)
}

func TestYAML(t *testing.T) {
	out := render(t, FormatYAML, English, FromResult(extract(t, scenario), nil))

	var v ReportView
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	require.Len(t, v.Transfers, 1)
	assert.Equal(t, "João Silva", v.Transfers[0].Payee)
	assert.Equal(t, "R$ 1.234,56", v.Summary.TotalDisplay)
	assert.Empty(t, v.Diagnostics)
}

func TestCSV(t *testing.T) {
	out := render(t, FormatCSV, English, FromResult(extract(t, scenario), nil))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,bank,payee"))
}

func TestFromResultFilter(t *testing.T) {
	res := extract(t, "Itaú Ana PIX R$ 100,00\nSantander Bia PIX R$ 50,00")
	rep := FromResult(res, func(tx *models.Transfer) bool { return tx.Bank() == "Santander" })

	require.Len(t, rep.Transfers, 1)
	assert.Equal(t, 1, rep.Summary.TotalCount)
	assert.Equal(t, "R$ 50,00", rep.Summary.TotalDisplay)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		err      bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{" json ", FormatJSON, false},
		{"pretty", FormatPretty, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	err := New(Format("xml"), English).Render(io.Discard, Report{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, Portuguese, LabelsFor("pt"))
	assert.Equal(t, Portuguese, LabelsFor("pt-BR"))
	assert.Equal(t, English, LabelsFor("en"))
	assert.Equal(t, English, LabelsFor(""))
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".txt", FormatText.Ext())
	assert.Equal(t, ".txt", FormatPretty.Ext())
	assert.Equal(t, ".csv", FormatCSV.Ext())
	assert.Equal(t, ".json", FormatJSON.Ext())
	assert.Equal(t, ".yaml", FormatYAML.Ext())
}
