package model

// DefaultRatings MPA 分级字典
var DefaultRatings = []Rating{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}

// DefaultGenres 类型字典
var DefaultGenres = []Genre{
	{ID: 1, Name: "Comedy"},
	{ID: 2, Name: "Drama"},
	{ID: 3, Name: "Animation"},
	{ID: 4, Name: "Thriller"},
	{ID: 5, Name: "Documentary"},
	{ID: 6, Name: "Action"},
}
