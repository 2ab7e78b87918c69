package film

import (
	"filmorate/internal/catalog"
	"filmorate/internal/model"
	"filmorate/internal/validation"
)

// RatingRef 请求中引用的分级
type RatingRef struct {
	ID int64 `json:"id" binding:"required"`
}

// GenreRef 请求中引用的类型
type GenreRef struct {
	ID int64 `json:"id" binding:"required"`
}

// NewFilmRequest 创建电影请求
type NewFilmRequest struct {
	Name        string     `json:"name" binding:"required,notblank"`
	Description string     `json:"description" binding:"max=200"`
	ReleaseDate string     `json:"releaseDate" binding:"omitempty,datetime=2006-01-02,releasedate"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	Mpa         *RatingRef `json:"mpa" binding:"required"`
	Genres      []GenreRef `json:"genres" binding:"omitempty,dive"`
}

// UpdateFilmRequest 更新电影请求，genres 为 null 表示不修改，[] 表示清空
type UpdateFilmRequest struct {
	ID          *int64     `json:"id" binding:"required"`
	Name        string     `json:"name"`
	Description string     `json:"description" binding:"max=200"`
	ReleaseDate string     `json:"releaseDate" binding:"omitempty,datetime=2006-01-02,releasedate"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	Mpa         *RatingRef `json:"mpa"`
	Genres      []GenreRef `json:"genres" binding:"omitempty,dive"`
}

// FilmResponse 电影响应
type FilmResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	ReleaseDate string                  `json:"releaseDate,omitempty"`
	Duration    int                     `json:"duration"`
	Mpa         *catalog.RatingResponse `json:"mpa"`
	Genres      []catalog.GenreResponse `json:"genres"`
}

func genresFromRefs(refs []GenreRef) []model.Genre {
	if refs == nil {
		return nil
	}
	genres := make([]model.Genre, 0, len(refs))
	for _, ref := range refs {
		genres = append(genres, model.Genre{ID: ref.ID})
	}
	return genres
}

func (r *NewFilmRequest) toModel() (model.Film, error) {
	released, err := validation.ParseDate(r.ReleaseDate)
	if err != nil {
		return model.Film{}, err
	}
	f := model.Film{
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: released,
		Genres:      genresFromRefs(r.Genres),
	}
	if r.Duration != nil {
		f.Duration = *r.Duration
	}
	if r.Mpa != nil {
		f.Mpa = &model.Rating{ID: r.Mpa.ID}
	}
	return f, nil
}

func (r *UpdateFilmRequest) toModel() (model.Film, error) {
	released, err := validation.ParseDate(r.ReleaseDate)
	if err != nil {
		return model.Film{}, err
	}
	f := model.Film{
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: released,
		Genres:      genresFromRefs(r.Genres),
	}
	if r.ID != nil {
		f.ID = *r.ID
	}
	if r.Duration != nil {
		f.Duration = *r.Duration
	}
	if r.Mpa != nil {
		f.Mpa = &model.Rating{ID: r.Mpa.ID}
	}
	return f, nil
}

func newFilmResponse(f *model.Film) FilmResponse {
	return FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: validation.FormatDate(f.ReleaseDate),
		Duration:    f.Duration,
		Mpa:         catalog.NewRatingResponse(f.Mpa),
		Genres:      catalog.NewGenreResponses(f.Genres),
	}
}

func newFilmResponses(films []model.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for i := range films {
		out = append(out, newFilmResponse(&films[i]))
	}
	return out
}
