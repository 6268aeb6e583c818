package catalog

import (
	"fmt"
	"strings"
)

var seedCategories = []Category{
	{ID: "sport", Name: "Sport"},
	{ID: "adventure", Name: "Adventure"},
	{ID: "cruiser", Name: "Cruiser"},
	{ID: "naked", Name: "Naked"},
	{ID: "touring", Name: "Touring"},
	{ID: "offroad", Name: "Off-Road"},
}

var seedBrands = []Brand{
	{ID: "kawasaki", Name: "Kawasaki"},
	{ID: "honda", Name: "Honda"},
	{ID: "yamaha", Name: "Yamaha"},
	{ID: "suzuki", Name: "Suzuki"},
	{ID: "ducati", Name: "Ducati"},
	{ID: "bmw", Name: "BMW"},
	{ID: "ktm", Name: "KTM"},
	{ID: "triumph", Name: "Triumph"},
	{ID: "harley", Name: "Harley-Davidson"},
	{ID: "royalenfield", Name: "Royal Enfield"},
	{ID: "tvs", Name: "TVS"},
	{ID: "bajaj", Name: "Bajaj"},
}

const generatedModels = 65

var (
	modelSuffixes = []string{"XR", "GP", "Street", "Thunder", "Lightning", "Cruise"}
	paletteColors = []string{"Red", "Black", "Blue", "White", "Silver", "Green"}
)

// templateBikes are the flagship models; generated variants reuse their imagery.
var templateBikes = []Product{
	{
		ID:             "ninja-zx10r",
		Name:           "Kawasaki Ninja ZX-10R",
		Description:    "The ultimate superbike with race-winning performance. Features cutting-edge technology derived from Kawasaki's racing program.",
		Price:          1599000,
		Image:          "https://images.unsplash.com/photo-1564249140364-202fd80b5876?q=80&w=1000&auto=format&fit=crop",
		Brand:          "kawasaki",
		Category:       "sport",
		EngineCapacity: "998 cc",
		Power:          "203 PS",
		TopSpeed:       "299 km/h",
		Weight:         "207 kg",
		Colors:         []string{"Green", "Black", "Blue"},
		InStock:        true,
		Featured:       true,
	},
	{
		ID:             "bmw-s1000rr",
		Name:           "BMW S1000RR",
		Description:    "German engineering at its finest. The S1000RR delivers incredible performance with sophisticated electronics and handling.",
		Price:          2195000,
		Image:          "https://images.unsplash.com/photo-1599819811279-d5ad9cccf838?q=80&w=2070&auto=format&fit=crop",
		Brand:          "bmw",
		Category:       "sport",
		EngineCapacity: "999 cc",
		Power:          "207 PS",
		TopSpeed:       "305 km/h",
		Weight:         "197 kg",
		Colors:         []string{"White/Blue/Red", "Black", "Racing Red"},
		InStock:        true,
		Featured:       true,
	},
	{
		ID:             "ducati-panigale-v4",
		Name:           "Ducati Panigale V4",
		Description:    "Italian masterpiece with the soul of MotoGP. The V4 engine produces incredible power with a sound to match.",
		Price:          2650000,
		Image:          "https://images.unsplash.com/photo-1568772585407-9361f9bf3a87?q=80&w=2070&auto=format&fit=crop",
		Brand:          "ducati",
		Category:       "sport",
		EngineCapacity: "1103 cc",
		Power:          "214 PS",
		TopSpeed:       "308 km/h",
		Weight:         "198 kg",
		Colors:         []string{"Ducati Red", "Winter Test", "Anniversary"},
		InStock:        true,
		Featured:       true,
	},
	{
		ID:             "yamaha-r1",
		Name:           "Yamaha YZF-R1",
		Description:    "Legendary superbike with crossplane technology. Precision engineering for ultimate track performance.",
		Price:          2050000,
		Image:          "https://images.unsplash.com/photo-1615172282427-9a39c7a732b8?q=80&w=2071&auto=format&fit=crop",
		Brand:          "yamaha",
		Category:       "sport",
		EngineCapacity: "998 cc",
		Power:          "200 PS",
		TopSpeed:       "299 km/h",
		Weight:         "201 kg",
		Colors:         []string{"Team Blue", "Black", "Anniversary"},
		InStock:        true,
		Featured:       true,
	},
	{
		ID:             "royal-enfield-classic-350",
		Name:           "Royal Enfield Classic 350",
		Description:    "The legacy continues with modern engineering. Authentic vintage styling with reliable performance.",
		Price:          193000,
		Image:          "https://images.unsplash.com/photo-1559074544-0a44b5c09a66?q=80&w=2070&auto=format&fit=crop",
		Brand:          "royalenfield",
		Category:       "cruiser",
		EngineCapacity: "349 cc",
		Power:          "20.2 bhp",
		TopSpeed:       "120 km/h",
		Weight:         "195 kg",
		Colors:         []string{"Chrome Bronze", "Stealth Black", "Signals"},
		InStock:        true,
		Discount:       Percent(5),
	},
	{
		ID:             "ktm-390-duke",
		Name:           "KTM 390 Duke",
		Description:    "The Corner Rocket that delivers pure performance with aggressive styling.",
		Price:          299000,
		Image:          "https://images.unsplash.com/photo-1614260112500-66c4c1db2a25?q=80&w=1674&auto=format&fit=crop",
		Brand:          "ktm",
		Category:       "naked",
		EngineCapacity: "373 cc",
		Power:          "43.5 PS",
		TopSpeed:       "167 km/h",
		Weight:         "163 kg",
		Colors:         []string{"Orange", "White", "Black"},
		InStock:        true,
	},
}

var lineupBikes = []Product{
	{
		ID:             "kawasaki-ninja-300",
		Name:           "Kawasaki Ninja 300",
		Description:    "Entry-level sport bike with impressive performance and reliability.",
		Price:          324000,
		Image:          "https://images.unsplash.com/photo-1571646750134-0d76cc63f8c3?q=80&w=1935&auto=format&fit=crop",
		Brand:          "kawasaki",
		Category:       "sport",
		EngineCapacity: "296 cc",
		Power:          "39 PS",
		TopSpeed:       "180 km/h",
		Weight:         "172 kg",
		Colors:         []string{"Green", "Black"},
		InStock:        true,
	},
	{
		ID:             "kawasaki-z900",
		Name:           "Kawasaki Z900",
		Description:    "Aggressive naked bike with excellent performance and handling.",
		Price:          835000,
		Image:          "https://images.unsplash.com/photo-1635073943212-f4b8b7f5e2a7?q=80&w=2070&auto=format&fit=crop",
		Brand:          "kawasaki",
		Category:       "naked",
		EngineCapacity: "948 cc",
		Power:          "125 PS",
		TopSpeed:       "245 km/h",
		Weight:         "212 kg",
		Colors:         []string{"Green/Black", "Black", "Grey/Green"},
		InStock:        true,
	},
	{
		ID:             "kawasaki-versys-650",
		Name:           "Kawasaki Versys 650",
		Description:    "Adventure-touring bike with comfortable ergonomics for long rides.",
		Price:          730000,
		Image:          "https://images.unsplash.com/photo-1637668413478-9a4b56272954?q=80&w=2070&auto=format&fit=crop",
		Brand:          "kawasaki",
		Category:       "adventure",
		EngineCapacity: "649 cc",
		Power:          "66 PS",
		TopSpeed:       "210 km/h",
		Weight:         "216 kg",
		Colors:         []string{"Green", "Black"},
		InStock:        true,
	},
	{
		ID:             "honda-cbr1000rr-r",
		Name:           "Honda CBR1000RR-R Fireblade",
		Description:    "MotoGP technology for the road with precision engineering.",
		Price:          2350000,
		Image:          "https://images.unsplash.com/photo-1552001948-a6a0bfa85a8c?q=80&w=2070&auto=format&fit=crop",
		Brand:          "honda",
		Category:       "sport",
		EngineCapacity: "1000 cc",
		Power:          "217 PS",
		TopSpeed:       "299 km/h",
		Weight:         "201 kg",
		Colors:         []string{"Grand Prix Red", "Black"},
		InStock:        true,
	},
	{
		ID:             "honda-cb650r",
		Name:           "Honda CB650R",
		Description:    "Neo-Sports Café styling with a smooth inline-four engine.",
		Price:          870000,
		Image:          "https://images.unsplash.com/photo-1608831540955-35094d48694a?q=80&w=2076&auto=format&fit=crop",
		Brand:          "honda",
		Category:       "naked",
		EngineCapacity: "649 cc",
		Power:          "95 PS",
		TopSpeed:       "225 km/h",
		Weight:         "202 kg",
		Colors:         []string{"Candy Chromosphere Red", "Mat Jeans Blue Metallic", "Graphite Black"},
		InStock:        true,
	},
}

// Seed builds the default catalog: the flagship and lineup bikes followed by the
// generated model range. Every call returns fresh copies.
func Seed() []Product {
	out := make([]Product, 0, len(templateBikes)+len(lineupBikes)+generatedModels)
	for _, p := range templateBikes {
		out = append(out, p.Clone())
	}
	for _, p := range lineupBikes {
		out = append(out, p.Clone())
	}
	for i := 1; i <= generatedModels; i++ {
		out = append(out, generatedBike(i))
	}
	return out
}

// SeedCategories returns the default category list.
func SeedCategories() []Category {
	return append([]Category(nil), seedCategories...)
}

// SeedBrands returns the default brand list.
func SeedBrands() []Brand {
	return append([]Brand(nil), seedBrands...)
}

func generatedBike(i int) Product {
	template := templateBikes[i%len(templateBikes)]
	brand := seedBrands[i%len(seedBrands)]
	category := seedCategories[i%len(seedCategories)]

	p := Product{
		ID:             fmt.Sprintf("bike-%d", i+10),
		Name:           fmt.Sprintf("%s %s %d", brand.Name, modelSuffixes[i%len(modelSuffixes)], 100+i*10),
		Description:    fmt.Sprintf("High-performance %s bike with advanced technology and exceptional handling.", strings.ToLower(category.Name)),
		Price:          int64(200000 + i*25000),
		Image:          template.Image,
		Brand:          brand.ID,
		Category:       category.ID,
		EngineCapacity: fmt.Sprintf("%d cc", 300+i*50),
		Power:          fmt.Sprintf("%d PS", 50+i*5),
		TopSpeed:       fmt.Sprintf("%d km/h", 150+i*5),
		Weight:         fmt.Sprintf("%d kg", 150+i*2),
		Colors:         append([]string(nil), paletteColors[:3+i%4]...),
		InStock:        i%10 != 0,
		Featured:       i%20 == 0,
	}
	if i%8 == 0 {
		p.Discount = Percent(10)
	}
	return p
}
