package catalog

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
)

// Service holds the static mock catalog. Items are generated once at
// construction and never change for the lifetime of the session.
type Service struct {
	games []domain.CatalogItem
	byID  map[uuid.UUID]domain.CatalogItem
}

var categories = []string{"Strategy", "Party", "Card", "Family", "Faction", "Puzzle"}

// Game names paired with their pinyin image asset names
var gamesData = []struct {
	name  string
	image string
}{
	{"Legends of the Three Kingdoms", "sanguosha"},
	{"Werewolf", "langrensha"},
	{"UNO", "uno"},
	{"Catan", "katandao"},
	{"Splendor", "cuicanbaoshi"},
	{"Avalon", "awalong"},
	{"Halli Galli", "deguoxinzangbing"},
	{"Saboteur", "airenkuanggong"},
	{"Dixit", "zhiyanpianyu"},
	{"Monopoly", "dafuweng"},
	{"Da Vinci Code", "dafenqimima"},
	{"Criminal Dance", "fanrenzaitiaowu"},
	{"Love Letter", "qingshu"},
	{"Exploding Kittens", "baozhamao"},
	{"Who is Spy", "shuishiwodi"},
	{"Modern Art", "xiandaiyishu"},
	{"Azul", "huazhuanwuyu"},
	{"Ticket to Ride", "chepiaozhilv"},
	{"Monopoly Tycoon", "dichandaheng"},
	{"Script Kill", "jubensha"},
}

// NewService generates the mock catalog. The seed makes prices and
// categories reproducible across restarts so persisted carts keep
// referring to items that still exist with the same prices.
func NewService(seed int64) *Service {
	rng := rand.New(rand.NewSource(seed))

	games := make([]domain.CatalogItem, 0, len(gamesData))
	byID := make(map[uuid.UUID]domain.CatalogItem, len(gamesData))
	for _, data := range gamesData {
		item := domain.CatalogItem{
			ID:          uuid.New(),
			Name:        data.name,
			Description: data.name + " is a very popular board game. Whether it's for a party or leisure, it brings you endless fun. Rent now and start your happy time!",
			ImageName:   data.image,
			BasePrice:   math.Round(5 + rng.Float64()*15),
			Category:    categories[rng.Intn(len(categories))],
		}
		games = append(games, item)
		byID[item.ID] = item
	}

	return &Service{games: games, byID: byID}
}

// Games returns all catalog items in display order
func (s *Service) Games() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(s.games))
	copy(out, s.games)
	return out
}

// GetByID returns the catalog item with the given id
func (s *Service) GetByID(id uuid.UUID) (domain.CatalogItem, bool) {
	item, ok := s.byID[id]
	return item, ok
}
