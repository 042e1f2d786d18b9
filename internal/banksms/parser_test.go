package banksms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSBPNotification(t *testing.T) {
	parsed := Parse("Поступление 3201р Счет*1234 SBP", "")

	assert.Equal(t, BankTypeSBP, parsed.BankType)
	assert.Equal(t, float64(3201), parsed.Amount)
	assert.Equal(t, "1234", parsed.Card)
}

func TestParseSBPMarkerBeatsPackageName(t *testing.T) {
	// The message came through the Sberbank app, but SBP transfers must
	// stay bank-agnostic.
	parsed := Parse("СБП Перевод 1000 руб", "ru.sberbankmobile")

	assert.Equal(t, BankTypeSBP, parsed.BankType)
	assert.Equal(t, float64(1000), parsed.Amount)
}

func TestParseTinkoffByPackageName(t *testing.T) {
	parsed := Parse("Пополнение, счет RUB. 5 000,50 RUB. Доступно 12 000 RUB", "com.idamob.tinkoff.android")

	assert.Equal(t, BankTypeTBank, parsed.BankType)
	assert.Equal(t, 5000.50, parsed.Amount)
	assert.Equal(t, float64(12000), parsed.Balance)
}

func TestParseSberbankByAlias(t *testing.T) {
	parsed := Parse("СБЕР +500 ₽ от Иван П.", "")

	assert.Equal(t, BankTypeSberbank, parsed.BankType)
	assert.Equal(t, float64(500), parsed.Amount)
	assert.Equal(t, "Иван П.", parsed.SenderName)
}

func TestParseVTBByPackageName(t *testing.T) {
	parsed := Parse("Поступление 3000 Счет*5715", "ru.vtb24.mobilebanking.android")

	assert.Equal(t, BankTypeVTB, parsed.BankType)
	assert.Equal(t, float64(3000), parsed.Amount)
	assert.Equal(t, "5715", parsed.Card)
}

func TestParseUnrecognizedMessage(t *testing.T) {
	parsed := Parse("Код подтверждения: 1234. Никому не сообщайте", "")

	assert.Equal(t, BankType(""), parsed.BankType)
	assert.Zero(t, parsed.Amount)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"6 150,99", 6150.99},
		{"6150.999", 6150.99},
		{"3201", 3201},
		{"1 000", 1000},
		{"-100", 0},
		{"0", 0},
		{"abc", 0},
		{"", 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ParseAmount(c.in), "ParseAmount(%q)", c.in)
	}
}
