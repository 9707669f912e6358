package examples

import "github.com/pluqqy/stash-cli/pkg/models"

func getBookExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Reading Nook",
			Description: "Science fiction on the shelf and a reading list",
			Items: []models.Item{
				{
					ID:            "example-dune",
					Name:          "Dune",
					Description:   "Frank Herbert. Ace paperback, 1990 printing.",
					Category:      "books",
					Tags:          []string{"sci-fi", "classic"},
					Rating:        5,
					Favorite:      true,
					CollectionIDs: []string{"example-sci-fi-shelf"},
					CreatedAt:     date(2020, 8, 1),
				},
				{
					ID:            "example-left-hand",
					Name:          "The Left Hand of Darkness",
					Description:   "Ursula K. Le Guin",
					Category:      "books",
					Tags:          []string{"sci-fi"},
					Rating:        4,
					CollectionIDs: []string{"example-sci-fi-shelf"},
					CreatedAt:     date(2021, 3, 9),
				},
				{
					ID:          "example-atlas",
					Name:        "Road Atlas",
					Description: "1998 edition, for the maps",
					CreatedAt:   date(2018, 5, 20),
				},
			},
			Collections: []models.Collection{
				{
					ID:        "example-sci-fi-shelf",
					Name:      "Sci-fi Shelf",
					Category:  "books",
					ItemIDs:   []string{"example-left-hand", "example-dune"},
					CreatedAt: date(2021, 3, 9),
				},
				{
					ID:        "example-to-sort",
					Name:      "To Sort",
					CreatedAt: date(2023, 1, 1),
				},
			},
			Wishes: []models.WishItem{
				{
					ID:       "example-neuromancer",
					Name:     "Neuromancer",
					Category: "books",
					Priority: models.PriorityMedium,
					Price:    12,
					URL:      "https://books.example/neuromancer",
				},
			},
		},
	}
}
