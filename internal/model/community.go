package model

// Community is a branded space that owns courses and a social feed.
type Community struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:255" json:"logoUrl"`
	OwnerID     uint   `gorm:"index" json:"ownerId"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Community) TableName() string {
	return "communities"
}

type Post struct {
	UUIDBase
	CommunityID string    `gorm:"index;type:varchar(36)" json:"communityId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    uint      `gorm:"index" json:"authorId"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        string    `gorm:"size:255" json:"tags"`
	Upvotes     int       `gorm:"default:0" json:"likes"`
	Views       int       `gorm:"default:0" json:"views"`
	IsPinned    bool      `gorm:"default:false" json:"isPinned"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	UUIDBase
	PostID      string  `gorm:"index;type:varchar(36)" json:"postId"`
	AuthorID    uint    `gorm:"index" json:"authorId"`
	Author      User    `gorm:"foreignKey:AuthorID" json:"author"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Upvotes     int     `gorm:"default:0" json:"likes"`
	ParentID    *string `gorm:"index;type:varchar(36)" json:"parentId"`
	ReplyToUID  *uint   `gorm:"index" json:"replyToUid"`
	ReplyToUser *User   `gorm:"foreignKey:ReplyToUID" json:"replyToUser,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type PostLike struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"uniqueIndex:idx_user_content" json:"userId"`
	ContentType string `gorm:"uniqueIndex:idx_user_content;size:20" json:"contentType"` // post, comment
	ContentID   string `gorm:"uniqueIndex:idx_user_content;size:36" json:"contentId"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
