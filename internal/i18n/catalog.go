// Package i18n resolves a language code and a notification kind to rendered
// title/body text. The catalog is a fixed table built at init; adding a
// language or a kind is a data change, not a code change.
package i18n

import (
	"fmt"
	"time"

	"github.com/go-room-notify/internal/domain"
)

// BaseLanguage is the always-supported fallback locale. The catalog for it
// must cover every kind.
const BaseLanguage = "en"

// clockLayout formats the start time interpolated into upcoming bodies.
const clockLayout = "15:04"

// Message is a rendered title/body pair.
type Message struct {
	Title string
	Body  string
}

// template holds the title and the body format string for one kind in one
// language. Bodies take the entity name; upcoming bodies take the entity
// name then the formatted clock time.
type template struct {
	title string
	body  string
}

// Resolve renders the message for ev in the given language, falling back to
// BaseLanguage when the language is unsupported. Rendering is pure string
// interpolation; no locale-sensitive pluralization.
func Resolve(lang string, ev domain.Event) Message {
	table, ok := catalog[lang]
	if !ok {
		table = catalog[BaseLanguage]
	}
	tpl := table[ev.Kind]
	if ev.Kind == domain.KindUpcoming {
		return Message{
			Title: tpl.title,
			Body:  fmt.Sprintf(tpl.body, ev.EntityName, ev.StartTime.Format(clockLayout)),
		}
	}
	return Message{Title: tpl.title, Body: fmt.Sprintf(tpl.body, ev.EntityName)}
}

// Supported reports whether the language has its own catalog entry.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// FormatClock renders a start time the way upcoming bodies embed it.
func FormatClock(t time.Time) string { return t.Format(clockLayout) }

var catalog = map[string]map[domain.Kind]template{
	"en": {
		domain.KindOrgApproved:      {"Organization Approved!", "You are now a member of %s."},
		domain.KindOrgDeclined:      {"Request Declined", "Your request to join %s was declined."},
		domain.KindOrgKicked:        {"Membership Removed", "You have been removed from %s."},
		domain.KindBookingApproved:  {"Booking Approved!", "Your reservation for %s is confirmed."},
		domain.KindBookingDeclined:  {"Booking Declined", "Your reservation for %s was declined by the administrator."},
		domain.KindBookingCancelled: {"Booking Cancelled", "Your reservation for %s has been cancelled."},
		domain.KindBookingCompleted: {"Booking Completed", "Your session in %s has ended. Thank you!"},
		domain.KindUpcoming:         {"Upcoming Reservation", "Your reservation for %s starts at %s."},
		domain.KindSessionStarting:  {"Session Starting Now", "Your session in %s is starting. You can head there now!"},
		domain.KindSessionEnding:    {"10-Minute Warning", "Your session in %s will end in 10 minutes."},
		domain.KindRoomAdded:        {"New Room Available!", "%s has been added to the list of available rooms."},
	},
	"ja": {
		domain.KindOrgApproved:      {"承認されました！", "%sのメンバーになりました。"},
		domain.KindOrgDeclined:      {"リクエスト拒否", "%sへの参加リクエストが拒否されました。"},
		domain.KindOrgKicked:        {"メンバーシップ解除", "%sから削除されました。"},
		domain.KindBookingApproved:  {"予約承認！", "%sの予約が確定しました。"},
		domain.KindBookingDeclined:  {"予約拒否", "%sの予約は管理者によって拒否されました。"},
		domain.KindBookingCancelled: {"予約キャンセル", "%sの予約がキャンセルされました。"},
		domain.KindBookingCompleted: {"予約完了", "%sでのセッションが終了しました。ありがとうございます！"},
		domain.KindUpcoming:         {"間もなく開始される予約", "%sの予約が%sに開始されます。"},
		domain.KindSessionStarting:  {"セッション開始", "%sでのセッションが始まります。移動してください。"},
		domain.KindSessionEnding:    {"あと10分で終了", "%sでのセッションはあと10分で終了します。"},
		domain.KindRoomAdded:        {"新しい部屋が追加されました！", "%sが利用可能な部屋に追加されました。"},
	},
	"ko": {
		domain.KindOrgApproved:      {"조직 승인됨!", "이제 %s의 멤버입니다."},
		domain.KindOrgDeclined:      {"요청 거절됨", "%s 가입 요청이 거절되었습니다."},
		domain.KindOrgKicked:        {"멤버십 삭제됨", "%s에서 삭제되었습니다."},
		domain.KindBookingApproved:  {"예약 승인됨!", "%s 예약이 확정되었습니다."},
		domain.KindBookingDeclined:  {"예약 거절됨", "%s 예약이 관리자에 의해 거절되었습니다."},
		domain.KindBookingCancelled: {"예약 취소됨", "%s 예약이 취소되었습니다."},
		domain.KindBookingCompleted: {"예약 완료됨", "%s에서의 세션이 종료되었습니다. 감사합니다!"},
		domain.KindUpcoming:         {"예정된 예약", "%s 예약이 %s에 시작됩니다."},
		domain.KindSessionStarting:  {"세션 시작됨", "%s 세션이 시작됩니다. 지금 이동하세요!"},
		domain.KindSessionEnding:    {"10분 전 알림", "%s 세션이 10분 후에 종료됩니다."},
		domain.KindRoomAdded:        {"새로운 방 이용 가능!", "%s이(가) 이용 가능한 방 목록에 추가되었습니다."},
	},
	"fil": {
		domain.KindOrgApproved:      {"Aprobado ang Organisasyon!", "Miyembro ka na ng %s."},
		domain.KindOrgDeclined:      {"Tinanggihan ang Kahilingan", "Ang iyong kahilingan na sumali sa %s ay tinanggihan."},
		domain.KindOrgKicked:        {"Tinanggal sa Membership", "Ikaw ay tinanggal na mula sa %s."},
		domain.KindBookingApproved:  {"Aprobado ang Pag-book!", "Ang reservasyon sa %s ay kumpirmado na."},
		domain.KindBookingDeclined:  {"Tinanggihan ang Pag-book", "Ang iyong reservasyon para sa %s ay tinanggihan ng administrador."},
		domain.KindBookingCancelled: {"Kinansela ang Pag-book", "Ang iyong reservasyon para sa %s ay kinansela na."},
		domain.KindBookingCompleted: {"Tapos na ang Pag-book", "Tapos na ang session sa %s. Salamat!"},
		domain.KindUpcoming:         {"Darating na Reservasyon", "Ang reservasyon para sa %s ay magsisimula sa ganap na %s."},
		domain.KindSessionStarting:  {"Magsisimula na ang Session", "Magsisimula na ang iyong session sa %s. Maaari ka nang pumunta!"},
		domain.KindSessionEnding:    {"10-Minutong Paalala", "Matatapos na ang iyong session sa %s sa loob ng 10 minuto."},
		domain.KindRoomAdded:        {"May Bagong Silid!", "Ang %s ay naidagdag na sa listahan ng mga bakanteng silid."},
	},
}
