package models

// NoticeCategory classifies a notice board entry
type NoticeCategory string

const (
	NoticeUrgent  NoticeCategory = "Urgent"
	NoticeNews    NoticeCategory = "News"
	NoticeEvent   NoticeCategory = "Event"
	NoticeGeneral NoticeCategory = "General"
)

// Notice is a notice board entry
type Notice struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Date     string         `json:"date"`
	Category NoticeCategory `json:"category"`
}

// MediaAsset is an image of the media gallery
type MediaAsset struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	IsSystem bool   `json:"isSystem,omitempty"`
	Label    string `json:"label,omitempty"`
}
