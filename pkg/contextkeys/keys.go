package contextkeys

type contextKey string

const ActorKey contextKey = "Actor"
