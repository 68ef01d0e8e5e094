package carelog

type EntryType string

const (
	EntryTypeFed           EntryType = "FED"
	EntryTypePlayed        EntryType = "PLAYED"
	EntryTypeSlept         EntryType = "SLEPT"
	EntryTypeHealed        EntryType = "HEALED"
	EntryTypeStatusChanged EntryType = "STATUS_CHANGED"
)

type ActorType string

const (
	ActorTypeOwnerUser ActorType = "OWNER_USER"
	ActorTypeScheduler ActorType = "SCHEDULER"
)
