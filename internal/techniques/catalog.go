package techniques

import "strings"

// The built-in judo technique catalog, throws and grappling, with the
// Korean name first and the romanized Japanese name in parentheses.

var Nage = []string{
	"업어치기 (Seoi-nage)", "양팔업어치기(Morote Seoi-Nage)", "업어떨어뜨리기 (Seoi-otoshi)", "빗당겨치기 (Tai-otoshi)",
	"어깨로메치기 (Kata-guruma)", "허리띄기 (Uki-goshi)", "허리껴치기 (O-goshi)",
	"허리후리기 (Harai-goshi)", "허리채기 (Tsurikomi-goshi)", "소매들어 허리채기 (Sode-tsurikomi-goshi)",
	"밭다리후리기 (Osoto-gari)", "안다리후리기 (Ouchi-gari)", "안뒤축후리기 (Kouchi-gari)", "발뒤축후리기 (Kosoto-gari)", "안뒤축감아치기 (Kouchi-makikomi)",
	"모두걸기 (Okuri-ashi-barai)", "발목받치기(Sasae-tsurikomi-ashi)", "허벅다리걸기 (Uchi-mata)", "다리대돌리기 (Ashi-guruma)", "오금대떨어뜨리기 (Tani-otoshi)",
	"배대뒤치기 (Tomoe-nage)", "안오금띄기(Sumi-gaeshi)", "누우면서던지기 (Ura-nage)", "모로던지기 (Yoko-guruma)", "뒤허리안아메치기 (Ushiro-goshi)",
}

var Katame = []string{
	"곁누르기 (Kesa-gatame)", "어깨누르기(Kata-gatame)", "위누르기 (Kami-shiho-gatame)", "가로누르기 (Yoko-shiho-gatame)", "세로누르기(Tate-shiho-gatame)",
	"맨손조르기 (Hadaka-jime)", "안아조르기 (Okuri-eri-jime)", "죽지걸어조르기 (Kataha-jime)", "삼각조르기 (Sankaku-jime)",
	"팔가로누워꺾기 (Ude-hishigi-juji-gatame)", "팔얽어비틀기 (Ude-garami)", "어깨대팔꿈치꺾기(Ude-hishigi-ude-gatame)",
}

// Catalog groups the technique names by waza family
type Catalog struct {
	Nage   []string `json:"nage"`
	Katame []string `json:"katame"`
}

func NewCatalog() Catalog {
	return Catalog{
		Nage:   Nage,
		Katame: Katame,
	}
}

// Search filters both families by a case insensitive substring match.
// An empty query returns the whole catalog.
func (c Catalog) Search(query string) Catalog {
	query = strings.ToLower(query)
	return Catalog{
		Nage:   filterByQuery(c.Nage, query),
		Katame: filterByQuery(c.Katame, query),
	}
}

// Contains reports whether the name is part of the built-in catalog.
// Free-form technique names outside the catalog are still valid in logs.
func (c Catalog) Contains(name string) bool {
	for _, technique := range c.Nage {
		if technique == name {
			return true
		}
	}
	for _, technique := range c.Katame {
		if technique == name {
			return true
		}
	}
	return false
}

func filterByQuery(techniques []string, query string) []string {
	filtered := make([]string, 0, len(techniques))
	for _, technique := range techniques {
		if strings.Contains(strings.ToLower(technique), query) {
			filtered = append(filtered, technique)
		}
	}
	return filtered
}
