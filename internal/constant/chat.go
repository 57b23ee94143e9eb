package constant

const (
	CollectionChats    = "chats"
	CollectionMessages = "messages"
	CollectionUsers    = "users"
)

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
	MessageTypeAudio = "audio"
	MessageTypeFile  = "file"
)

var MessageTypes = []string{
	MessageTypeText,
	MessageTypeImage,
	MessageTypeVideo,
	MessageTypeAudio,
	MessageTypeFile,
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	StorageFolderMedia   = "chat-media"
	StorageFolderAvatars = "group-avatars"
)
