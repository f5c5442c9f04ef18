package notifications

import (
	"fmt"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/payloads"
)

// bookingConfirmedEmail renders the customer confirmation in the locale
// the booking was made with.
func bookingConfirmedEmail(payload payloads.BookingConfirmedEvent) (subject, body string) {
	amount := payload.Amount.StringFixed(0)
	if payload.Locale == enums.LocaleEnglish {
		subject = "Your booking is confirmed"
		body = fmt.Sprintf(
			"Hello %s,\n\nYour booking for %s has been confirmed.\nAmount paid: %s IQD\nTransaction: %s\n\nWe will contact you shortly to arrange the session.\n\nNetWave IQ",
			payload.CustomerName, payload.ServiceName, amount, payload.TransactionID,
		)
		return subject, body
	}
	subject = "تم تأكيد حجزك"
	body = fmt.Sprintf(
		"مرحباً %s،\n\nتم تأكيد حجزك لخدمة %s.\nالمبلغ المدفوع: %s د.ع\nرقم العملية: %s\n\nسنتواصل معك قريباً لتحديد موعد الجلسة.\n\nنت ويف",
		payload.CustomerName, payload.ServiceName, amount, payload.TransactionID,
	)
	return subject, body
}

func bookingAdminAlertEmail(payload payloads.BookingConfirmedEvent) (subject, body string) {
	subject = fmt.Sprintf("حجز مؤكد: %s", payload.ServiceName)
	body = fmt.Sprintf(
		"حجز جديد مدفوع.\n\nالعميل: %s\nالبريد: %s\nالخدمة: %s\nالمبلغ: %s د.ع\nرقم العملية: %s\nرقم الحجز: %s",
		payload.CustomerName, payload.CustomerEmail, payload.ServiceName,
		payload.Amount.StringFixed(0), payload.TransactionID, payload.BookingID,
	)
	return subject, body
}

func purchaseAdminAlertEmail(payload payloads.PurchaseRecordedEvent) (subject, body string) {
	subject = fmt.Sprintf("شراء ملف: %s", payload.FileTitle)
	body = fmt.Sprintf(
		"عملية شراء جديدة.\n\nالملف: %s\nالمستخدم: %s\nالمبلغ: %s د.ع\nرقم العملية: %s",
		payload.FileTitle, payload.UserID, payload.Amount.StringFixed(0), payload.TransactionID,
	)
	return subject, body
}
