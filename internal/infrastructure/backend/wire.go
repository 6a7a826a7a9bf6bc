package backend

import (
	"encoding/json"
	"strings"

	"github.com/matchme/matchme-web/internal/core/domain"
)

// notAvailable is how the backend reports an empty middle name.
const notAvailable = "(N/A)"

type tokenResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type valueBody struct {
	Value string `json:"value"`
}

type aboutBody struct {
	NewAbout string `json:"newAbout"`
}

type aboutResponse struct {
	About string `json:"about"`
}

type birthdayBody struct {
	Birthday string `json:"birthday"`
}

type birthdayResponse struct {
	Birthday string `json:"birthday"`
	Age      *int   `json:"age"`
}

type weightsResponse struct {
	Distance float64 `json:"weigh_distance"`
	Age      float64 `json:"weigh_age"`
	Food     float64 `json:"weigh_food"`
	Hobbies  float64 `json:"weigh_hobbies"`
	Music    float64 `json:"weigh_music"`
}

func (w weightsResponse) toDomain() domain.Weights {
	return domain.Weights{
		domain.WeightDistance: domain.WeightFromFloat(w.Distance),
		domain.WeightAge:      domain.WeightFromFloat(w.Age),
		domain.WeightFood:     domain.WeightFromFloat(w.Food),
		domain.WeightHobbies:  domain.WeightFromFloat(w.Hobbies),
		domain.WeightMusic:    domain.WeightFromFloat(w.Music),
	}
}

func normalizeUser(u domain.UserProfile) domain.UserProfile {
	if strings.TrimSpace(u.MiddleName) == notAvailable {
		u.MiddleName = ""
	}
	return u
}

// codeList decodes either a JSON array of codes or a comma-joined string.
type codeList []string

func (l *codeList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var codes []string
	if err := json.Unmarshal(b, &codes); err == nil {
		*l = compact(codes)
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*l = compact(strings.Split(joined, ","))
	return nil
}

func compact(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// selectionResponse accepts the list form ({"food": [...]}) as well as the
// column form the backend stores ({"food_myvariabledata": "a,b"}).
type selectionResponse struct {
	Food        codeList `json:"food"`
	Hobby       codeList `json:"hobby"`
	Music       codeList `json:"music"`
	FoodColumn  codeList `json:"food_myvariabledata"`
	HobbyColumn codeList `json:"hobbies_myvariabledata"`
	MusicColumn codeList `json:"music_myvariabledata"`
}

func (s selectionResponse) toDomain() domain.Selection {
	pick := func(list, column codeList) []string {
		if len(list) > 0 {
			return list
		}
		if len(column) > 0 {
			return column
		}
		return []string{}
	}
	return domain.Selection{
		Food:  pick(s.Food, s.FoodColumn),
		Hobby: pick(s.Hobby, s.HobbyColumn),
		Music: pick(s.Music, s.MusicColumn),
	}
}
