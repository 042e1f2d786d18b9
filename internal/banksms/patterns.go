package banksms

import "regexp"

// BankType tags a parsed notification with the bank that produced it.
// SBP is a marker, not a bank: fast-payment transfers arrive through any
// banking app, so SBP-tagged notifications are matched bank-agnostically.
type BankType string

const (
	BankTypeSBP             BankType = "SBP"
	BankTypeTBank           BankType = "TBANK"
	BankTypeAlfabank        BankType = "ALFABANK"
	BankTypeSberbank        BankType = "SBERBANK"
	BankTypeVTB             BankType = "VTB"
	BankTypeGazprombank     BankType = "GAZPROMBANK"
	BankTypeRaiffeisen      BankType = "RAIFFEISEN"
	BankTypePochtabank      BankType = "POCHTABANK"
	BankTypeOzonbank        BankType = "OZONBANK"
	BankTypeHomeCredit      BankType = "HOMECREDIT"
	BankTypeOTPBank         BankType = "OTPBANK"
	BankTypePromsvyazbank   BankType = "PROMSVYAZBANK"
	BankTypeMTSBank         BankType = "MTSBANK"
	BankTypeUralsib         BankType = "URALSIB"
	BankTypeSovcombank      BankType = "SOVCOMBANK"
	BankTypeRosbank         BankType = "ROSBANK"
	BankTypeRussianStandard BankType = "RUSSIANSTANDARD"
	BankTypeOpenBank        BankType = "OPENBANK"
)

// bankPattern is one row of the notification rule table: how to recognize
// a bank's messages and which regex alternatives extract each field.
// Adding a bank is a data change, not new code.
type bankPattern struct {
	name         string
	bankType     BankType
	aliases      []string
	packageNames []string
	amount       []*regexp.Regexp
	balance      []*regexp.Regexp
	card         []*regexp.Regexp
	sender       []*regexp.Regexp
}

var senderDefault = []*regexp.Regexp{
	regexp.MustCompile(`от\s+([А-ЯЁA-Z][а-яёa-z]+(?:\s+[А-ЯЁA-Z]\.?)*)`),
	regexp.MustCompile(`Отправитель[:\s]+([А-ЯЁA-Z][а-яёa-z]+(?:\s+[А-ЯЁA-Z]\.?)*)`),
}

var balanceDefault = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Баланс|Остаток|Доступно)[:\s]+([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|RUR|₽)?`),
}

var cardDefault = []*regexp.Regexp{
	regexp.MustCompile(`Счет\*(\d{4})`),
	regexp.MustCompile(`СЧЁТ(\d{4})`),
	regexp.MustCompile(`MIR-(\d{4})`),
	regexp.MustCompile(`\*(\d{4})`),
}

// sbpPattern has absolute priority: an SBP marker anywhere in the content
// wins over package-name matching, because SBP transfers are delivered by
// whichever banking app the trader happens to run.
var sbpPattern = &bankPattern{
	name:     "СБП",
	bankType: BankTypeSBP,
	aliases:  []string{"СБП", "SBP", "Система быстрых платежей"},
	amount: []*regexp.Regexp{
		regexp.MustCompile(`(?i)Поступление\s+([\d\s]+)\s*р.*?(?:SBP|СБП)`),
		regexp.MustCompile(`(?i)(?:SBP|СБП).*?\+?([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|₽)`),
		regexp.MustCompile(`(?i)Перевод\s+СБП.*?([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|₽)`),
		regexp.MustCompile(`(?i)Система\s+быстрых\s+платежей.*?([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|₽)`),
		regexp.MustCompile(`(?i)Поступление\s+([\d\s]+)р?\s+Счет\*\d{4}\s+(?:SBP|СБП)`),
	},
	balance: balanceDefault,
	card:    cardDefault,
	sender:  senderDefault,
}

// Fixed priority order; first hit wins per selection rule.
var bankPatterns = []*bankPattern{
	{
		name:         "Тинькофф",
		bankType:     BankTypeTBank,
		aliases:      []string{"Тинькофф", "Tinkoff", "T-Bank", "TBANK"},
		packageNames: []string{"com.idamob.tinkoff.android", "ru.tinkoff", "ru.tinkoff.sme"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Покупка|Оплата|Перевод|Поступление|Зачисление)[,\s]+(?:счет\s+RUB\.\s*)?([\d\s]+(?:[.,]\d{2})?)\s*(?:RUB|RUR|₽|р|руб)`),
			regexp.MustCompile(`(?i)на\s+([\d\s]+(?:[.,]\d{2})?)\s*(?:RUB|RUR|₽|р|руб)`),
			regexp.MustCompile(`(?i)([+-]?[\d\s]+(?:[.,]\d{2})?)\s*(?:RUB|RUR|₽|р|руб)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Альфа-Банк",
		bankType:     BankTypeAlfabank,
		aliases:      []string{"Альфа-Банк", "Альфа_Банк", "Альфа Банк", "ALFABANK"},
		packageNames: []string{"ru.alfabank.mobile.android", "ru.alfabank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Перевод|Покупка|Зачисление|Списание|Оплата)(?:\s+из\s+[^+]+)?\s*\+?([\d\s]+)\s*р`),
			regexp.MustCompile(`(?i)([+-]?[\d\s]+(?:[.,]\d{2})?)\s*(?:р|руб|RUB|RUR)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Сбербанк",
		bankType:     BankTypeSberbank,
		aliases:      []string{"Сбербанк", "Sberbank", "SBERBANK", "СБЕР"},
		packageNames: []string{"ru.sberbankmobile", "com.sberbank", "ru.sberbank.android"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)СБЕР\s*\+?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)(?:Перевод|Покупка|Оплата|Зачисление|Поступление)\s+([\d\s]+)\s*р`),
			regexp.MustCompile(`(?i)([+-]?[\d\s]+(?:[.,]\d{2})?)\s*(?:р|руб|RUB|₽)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "ВТБ",
		bankType:     BankTypeVTB,
		aliases:      []string{"ВТБ", "VTB"},
		packageNames: []string{"ru.vtb24.mobilebanking.android", "ru.vtb24", "ru.vtb"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Поступление\s+([\d\s]+(?:[.,]\d{2})?)\s*[₽р]`),
			regexp.MustCompile(`(?i)Поступление\s+([\d\s]+(?:[.,]\d{2})?)\s+Счет\*`),
			regexp.MustCompile(`(?i)(?:Перевод|Оплата|Покупка|Зачисление)(?:\s+из\s+[^+]+)?\s*\+?([\d\s]+)\s*р`),
			regexp.MustCompile(`(?i)ВТБ\s+Онлайн.*?Поступление\s+([\d\s]+)\s*р`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|₽)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Газпромбанк",
		bankType:     BankTypeGazprombank,
		aliases:      []string{"Газпромбанк", "Gazprombank", "GAZPROMBANK"},
		packageNames: []string{"ru.gazprombank.android.mobilebank.app", "ru.gazprombank.android", "ru.gazprombank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Перевод\s+зачисление\s+([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)(?:Перевод|Зачисление|Оплата|Пополнение)(?:\s+из\s+[^+]+)?\s*\+?([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Райффайзенбанк",
		bankType:     BankTypeRaiffeisen,
		aliases:      []string{"Райффайзенбанк", "Raiffeisen", "RAIFFEISEN"},
		packageNames: []string{"ru.raiffeisen.mobile.new", "ru.raiffeisen", "ru.raiffeisenbank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод от|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)\+([\d\s]+(?:[.,]\d{2})?)\s*RUB.*?перевод`),
			regexp.MustCompile(`(?i)Поступление\s+([\d\s]+(?:[.,]\d{2})?)\s*₽`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Почта Банк",
		bankType:     BankTypePochtabank,
		aliases:      []string{"Почта Банк", "Pochtabank", "POCHTABANK"},
		packageNames: []string{"ru.pochta.bank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Озон Банк",
		bankType:     BankTypeOzonbank,
		aliases:      []string{"Озон Банк", "Ozon Bank", "OZONBANK"},
		packageNames: []string{"ru.ozon.bank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление).*?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Хоум Кредит",
		bankType:     BankTypeHomeCredit,
		aliases:      []string{"Хоум Кредит", "Home Credit", "HOMECREDIT"},
		packageNames: []string{"ru.homecredit.bank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление).*?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "ОТП Банк",
		bankType:     BankTypeOTPBank,
		aliases:      []string{"ОТП Банк", "OTP Bank", "OTPBANK"},
		packageNames: []string{"ru.otpbank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
			regexp.MustCompile(`(?i)Зачисление\s+([\d\s]+)\s*р`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "ПСБ",
		bankType:     BankTypePromsvyazbank,
		aliases:      []string{"ПСБ", "Промсвязьбанк", "PSB", "PROMSVYAZBANK"},
		packageNames: []string{"ru.psbank.android", "ru.psb"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Покупка|Оплата|Перевод|Зачисление)\s+(?:на\s+)?([\d\s]+(?:[.,]\d{2})?)\s*(?:RUR|руб|р)`),
			regexp.MustCompile(`([\d\s]+(?:[.,]\d{2})?)\s*р\.`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "МТС Банк",
		bankType:     BankTypeMTSBank,
		aliases:      []string{"МТС Банк", "MTS Bank", "MTSBANK"},
		packageNames: []string{"ru.mts.bank", "ru.mtsbank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|RUR|₽)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "УралСиб",
		bankType:     BankTypeUralsib,
		aliases:      []string{"УралСиб", "Uralsib", "URALSIB"},
		packageNames: []string{"ru.uralsib.bank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление).*?([\d\s]+(?:[.,]\d{2})?)\s*₽`),
			regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Совкомбанк",
		bankType:     BankTypeSovcombank,
		aliases:      []string{"Совкомбанк", "Sovcombank", "SOVCOMBANK"},
		packageNames: []string{"ru.sovcombank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Росбанк",
		bankType:     BankTypeRosbank,
		aliases:      []string{"Росбанк", "Rosbank", "ROSBANK"},
		packageNames: []string{"ru.rosbank.android"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
	{
		name:         "Открытие",
		bankType:     BankTypeOpenBank,
		aliases:      []string{"Открытие", "Otkritie", "OPENBANK"},
		packageNames: []string{"com.openbank"},
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Пополнение|Перевод|Поступление|Зачисление).*?([\d\s]+(?:[.,]\d{2})?)\s*(?:₽|р|руб|RUB)`),
		},
		balance: balanceDefault,
		card:    cardDefault,
		sender:  senderDefault,
	},
}

// genericPattern is the loose-money fallback for unrecognized sources.
// It never contributes a BankType.
var genericPattern = &bankPattern{
	name: "GenericSMS",
	amount: []*regexp.Regexp{
		regexp.MustCompile(`(?i)([\d\s]+(?:[.,]\d{2})?)\s*(?:руб|р|RUB|RUR|₽)`),
		regexp.MustCompile(`(?i)(?:сумма|на сумму)[:\s]+([\d\s]+(?:[.,]\d{2})?)`),
	},
	balance: balanceDefault,
	card: []*regexp.Regexp{
		regexp.MustCompile(`\*(\d{4})`),
		regexp.MustCompile(`MIR-(\d{4})`),
		regexp.MustCompile(`СЧЁТ(\d{4})`),
		regexp.MustCompile(`(?i)(?:Карта|Card)\s*\*?(\d{4})`),
	},
	sender: senderDefault,
}
