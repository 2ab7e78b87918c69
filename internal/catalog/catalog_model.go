package catalog

import "filmorate/internal/model"

// RatingResponse MPA 分级
type RatingResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreResponse 电影类型
type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewRatingResponse 转换分级
func NewRatingResponse(r *model.Rating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{ID: r.ID, Name: r.Name}
}

// NewRatingResponses 转换分级列表
func NewRatingResponses(ratings []model.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, RatingResponse{ID: r.ID, Name: r.Name})
	}
	return out
}

// NewGenreResponses 转换类型列表，nil 输出为空数组
func NewGenreResponses(genres []model.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{ID: g.ID, Name: g.Name})
	}
	return out
}
