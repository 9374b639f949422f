package domain

type (
	BoardId          = int64
	BoardName        = string
	BoardDescription = string
)
