package model

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentVideo ContentType = "video"
	ContentBlog  ContentType = "blog"
	ContentFile  ContentType = "file"
)

// Content 章节下的学习内容。表结构允许 Text/Video/File 同时为空或同时有值，
// 与 ContentType 是否匹配由 service 层保证。
type Content struct {
	UUIDBase
	TopicID     string      `gorm:"type:varchar(36);index;not null" json:"topic_id" validate:"required"`
	Topic       *Topic      `gorm:"constraint:OnDelete:CASCADE" json:"topic,omitempty" validate:"-"`
	ContentType ContentType `gorm:"size:10;not null" json:"content_type" validate:"required,oneof=text video blog file"`
	Title       string      `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Text        string      `gorm:"type:text" json:"text"`
	Video       string      `gorm:"size:200" json:"video" validate:"omitempty,url,max=200"`
	File        string      `gorm:"size:100" json:"file" validate:"max=100"`
	Order       int         `gorm:"column:order;not null;default:0" json:"order" validate:"gte=0"`
}

func (Content) TableName() string {
	return "contents"
}

func (c Content) String() string {
	return c.Title
}

// PayloadField 返回该类型应当填写的字段名，blog 与 text 共用正文
func (t ContentType) PayloadField() string {
	switch t {
	case ContentText, ContentBlog:
		return "text"
	case ContentVideo:
		return "video"
	case ContentFile:
		return "file"
	}
	return ""
}

// Payloads 按字段名返回三个载荷字段的当前值
func (c *Content) Payloads() map[string]string {
	return map[string]string{
		"text":  c.Text,
		"video": c.Video,
		"file":  c.File,
	}
}
