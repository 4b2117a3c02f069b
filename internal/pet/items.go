package pet

// Item ids
const (
	ItemBerry  = "berry"
	ItemPotion = "potion"
)

// Item describes something the player can carry
type Item struct {
	ID          string
	Name        string
	Emoji       string
	Description string
	Effect      string
}

// Items lists the known items in display order
var Items = []Item{
	{
		ID:          ItemBerry,
		Name:        "Berry",
		Emoji:       "🍓",
		Description: "A sweet fruit that companions love",
		Effect:      "Restores hunger and HP",
	},
	{
		ID:          ItemPotion,
		Name:        "Potion",
		Emoji:       "🧪",
		Description: "A spray-type medicine for wounds",
		Effect:      "Restores 20 HP",
	},
}

// DefaultInventory is what a new game starts with
func DefaultInventory() map[string]int {
	return map[string]int{
		ItemBerry:  5,
		ItemPotion: 3,
	}
}
