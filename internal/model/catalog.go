package model

// Catalog lists the known model names per category in release order. The
// position in the list is the fixed display rank used to sort model
// rankings; names not in the list rank after every known name.
var catalog = map[Category][]string{
	CategoryMac: {
		"iMac",
		"iMac Pro",
		"MacBook",
		"MacBook Air",
		"MacBook Pro",
		"Mac mini",
		"Mac Studio",
		"Mac Pro",
		"Earlier Models",
	},
	CategoryIPhone: {
		"iPhone",
		"iPhone 3G",
		"iPhone 3GS",
		"iPhone 4",
		"iPhone 4S",
		"iPhone 5",
		"iPhone 5c",
		"iPhone 5s",
		"iPhone 6",
		"iPhone 6 Plus",
		"iPhone 6s",
		"iPhone 6s Plus",
		"iPhone SE (1st generation)",
		"iPhone 7",
		"iPhone 7 Plus",
		"iPhone 8",
		"iPhone 8 Plus",
		"iPhone X",
		"iPhone XR",
		"iPhone XS",
		"iPhone XS Max",
		"iPhone 11",
		"iPhone 11 Pro",
		"iPhone 11 Pro Max",
		"iPhone SE (2nd generation)",
		"iPhone 12 mini",
		"iPhone 12",
		"iPhone 12 Pro",
		"iPhone 12 Pro Max",
		"iPhone 13 mini",
		"iPhone 13",
		"iPhone 13 Pro",
		"iPhone 13 Pro Max",
		"iPhone SE (3rd generation)",
		"iPhone 14",
		"iPhone 14 Plus",
		"iPhone 14 Pro",
		"iPhone 14 Pro Max",
		"iPhone 15",
		"iPhone 15 Plus",
		"iPhone 15 Pro",
		"iPhone 15 Pro Max",
		"Other",
	},
	CategoryIPad: {
		"iPad",
		"iPad 2",
		"iPad mini",
		"iPad Air",
		"iPad Pro",
		"Other",
	},
	CategoryAppleWatch: {
		"Apple Watch (1st generation)",
		"Series 1",
		"Series 2",
		"Series 3",
		"Series 4",
		"Series 5",
		"SE (1st generation)",
		"Series 6",
		"Series 7",
		"SE (2nd generation)",
		"Series 8",
		"Ultra",
		"Series 9",
		"Ultra 2",
		"Other",
	},
	CategoryAirPods: {
		"AirPods (1st generation)",
		"AirPods (2nd generation)",
		"AirPods Pro (1st generation)",
		"AirPods Max",
		"AirPods (3rd generation)",
		"AirPods Pro (2nd generation)",
		"Other",
	},
	CategoryAppleTV: {
		"Apple TV (1st generation)",
		"Apple TV (2nd generation)",
		"Apple TV (3rd generation)",
		"Apple TV HD",
		"Apple TV 4K (1st generation)",
		"Apple TV 4K (2nd generation)",
		"Apple TV 4K (3rd generation)",
		"Other",
	},
	CategoryIPod: {
		"iPod classic",
		"iPod mini",
		"iPod shuffle",
		"iPod nano",
		"iPod touch",
		"Earlier Models",
	},
}

// CatalogFor returns the known model names for a category in rank order.
func CatalogFor(c Category) []string {
	models := catalog[c]
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// ModelRank returns the fixed display rank of a model name within its
// category. Unknown and custom names all share the last rank.
func ModelRank(c Category, name string) int {
	models := catalog[c]
	for i, m := range models {
		if m == name {
			return i
		}
	}
	return len(models)
}

// KnownModel reports whether name is in the category's catalog.
func KnownModel(c Category, name string) bool {
	return ModelRank(c, name) < len(catalog[c])
}

// IsOverrideModel reports whether the model name is a sentinel whose row
// value comes from the record's free-text CustomModel instead.
func IsOverrideModel(name string) bool {
	return name == "Other" || name == "Earlier Models"
}

// OverrideSentinel returns the category's sentinel model name.
func OverrideSentinel(c Category) string {
	models := catalog[c]
	if len(models) == 0 {
		return "Other"
	}
	return models[len(models)-1]
}
