package examples

import "github.com/pluqqy/stash-cli/pkg/models"

func getMusicExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Record Shelf",
			Description: "A small vinyl collection with a listening order and a gear wish list",
			Items: []models.Item{
				{
					ID:            "example-blue-train",
					Name:          "Blue Train",
					Description:   "John Coltrane, Blue Note 1957. Tone poet reissue.",
					Category:      "vinyl",
					Tags:          []string{"jazz", "hard-bop"},
					Rating:        5,
					Favorite:      true,
					CollectionIDs: []string{"example-jazz-essentials"},
					AcquiredAt:    date(2021, 4, 17),
					CreatedAt:     date(2021, 4, 17),
				},
				{
					ID:            "example-kind-of-blue",
					Name:          "Kind of Blue",
					Description:   "Miles Davis, Columbia 1959",
					Category:      "vinyl",
					Tags:          []string{"jazz", "modal"},
					Rating:        5,
					CollectionIDs: []string{"example-jazz-essentials"},
					AcquiredAt:    date(2019, 11, 2),
					CreatedAt:     date(2020, 1, 5),
				},
				{
					ID:            "example-moanin",
					Name:          "Moanin'",
					Description:   "Art Blakey and the Jazz Messengers",
					Category:      "vinyl",
					Tags:          []string{"jazz", "hard-bop"},
					Rating:        4,
					CollectionIDs: []string{"example-jazz-essentials"},
					CreatedAt:     date(2022, 2, 14),
				},
				{
					ID:          "example-rumours",
					Name:        "Rumours",
					Description: "Fleetwood Mac, original 1977 pressing with some ring wear",
					Category:    "vinyl",
					Tags:        []string{"rock"},
					Rating:      3,
					CreatedAt:   date(2023, 6, 30),
				},
			},
			Collections: []models.Collection{
				{
					ID:          "example-jazz-essentials",
					Name:        "Jazz Essentials",
					Description: "Listening order for newcomers",
					Category:    "vinyl",
					Tags:        []string{"jazz"},
					Public:      true,
					ItemIDs:     []string{"example-kind-of-blue", "example-blue-train", "example-moanin"},
					CreatedAt:   date(2022, 2, 14),
				},
			},
			Wishes: []models.WishItem{
				{
					ID:       "example-turntable",
					Name:     "Direct-drive turntable",
					Notes:    "Something with a removable headshell",
					Category: "audio",
					Priority: models.PriorityHigh,
					Price:    399,
				},
				{
					ID:       "example-sleeves",
					Name:     "Outer sleeves (100 pack)",
					Category: "vinyl",
					Priority: models.PriorityLow,
					Price:    15,
				},
				{
					ID:       "example-a-love-supreme",
					Name:     "A Love Supreme",
					Category: "vinyl",
					Price:    32.5,
				},
			},
		},
	}
}
