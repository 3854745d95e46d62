package playoff

type Conference string

const (
	ConferenceEast Conference = "East"
	ConferenceWest Conference = "West"
	ConferenceNone Conference = "None"
)
