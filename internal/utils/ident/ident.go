// Package ident генерирует идентификаторы заказов, транзакций, тикетов
// и референс-коды депозитов.
package ident

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// randomDigits возвращает n случайных десятичных цифр
func randomDigits(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand на практике не возвращает ошибок; нулевая цифра
			// как запасной вариант сохраняет формат идентификатора
			buf[i] = '0'
			continue
		}
		buf[i] = byte('0' + v.Int64())
	}
	return string(buf)
}

// generate собирает идентификатор: префикс + миллисекундная метка + случайный хвост
func generate(prefix string) string {
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), randomDigits(3))
}

// OrderID генерирует идентификатор заказа
func OrderID() string {
	return generate("ORD")
}

// TransactionID генерирует идентификатор транзакции
func TransactionID() string {
	return generate("TXN")
}

// TicketID генерирует идентификатор тикета
func TicketID() string {
	return generate("TKT")
}

// Reference генерирует референс-код депозита. Код короткий и без
// похожих символов (0/O, 1/I), потому что его вручную указывают
// в назначении банковского перевода.
func Reference() string {
	buf := make([]byte, 8)
	for i := range buf {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			buf[i] = referenceAlphabet[0]
			continue
		}
		buf[i] = referenceAlphabet[v.Int64()]
	}
	return "EQ" + string(buf)
}

// ReferralCode генерирует реферальный код пользователя
func ReferralCode() string {
	buf := make([]byte, 6)
	for i := range buf {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			buf[i] = referenceAlphabet[0]
			continue
		}
		buf[i] = referenceAlphabet[v.Int64()]
	}
	return string(buf)
}
