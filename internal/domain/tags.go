package domain

// TagPair holds the two most recent tags matching a pattern, as returned by a
// tagger-date-ordered query. Newest is the tag the next changelog ends at,
// Previous the one it starts after.

type TagPair struct {
	Newest   string
	Previous string
}
