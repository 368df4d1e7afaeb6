package collection

type NoticeLevel string

const (
	LevelSuccess NoticeLevel = "success"
	LevelInfo    NoticeLevel = "info"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// Notice keys double as translation keys.
const (
	NoticeLoadFailed    = "notice.load_failed"
	NoticeVerified      = "notice.verified"
	NoticeUnverified    = "notice.unverified"
	NoticeVerifyFailed  = "notice.verify_failed"
	NoticeSelectOne     = "notice.select_one"
	NoticeBulkUpdated   = "notice.bulk_updated"
	NoticeBulkFailed    = "notice.bulk_failed"
	NoticeExportStarted = "notice.export_started"
	NoticeNotPermitted  = "notice.not_permitted"
)

type Notice struct {
	Level  NoticeLevel
	Key    string
	Params []string
}
