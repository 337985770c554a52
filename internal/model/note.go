package model

// Note is a free-form memo owned by nobody in particular; who wrote and
// who last touched it is tracked through CommonInfo.
type Note struct {
	ID      uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Title   string `gorm:"column:title;type:VARCHAR2(100);not null"`
	Content string `gorm:"column:content;type:VARCHAR2(2000)"`

	CommonInfo
}

func (*Note) TableName() string {
	return "note"
}

func (n *Note) IsNew() bool {
	return n.ID == 0
}

func NewNote(title, content string) *Note {
	return &Note{
		Title:   title,
		Content: content,
	}
}
