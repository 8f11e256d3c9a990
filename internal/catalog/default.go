// internal/catalog/default.go
package catalog

import "github.com/shopspring/decimal"

// Attribute names used by the default tariff.
const (
	AttrDoorMechanism = "door_mechanism"
	AttrDoorCount     = "door_count"
	AttrMirror        = "mirror"
	AttrFrameWidth    = "frame_width"
)

// Door allowance included in a wardrobe's base price.
const DoorAllowance = 2

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Default returns the built-in tariff. Prices are EUR.
func Default() *Catalog {
	c, err := New(defaultEntries())
	if err != nil {
		// The built-in tariff is static; a compile failure here is a bug.
		panic(err)
	}
	return c
}

func defaultEntries() []Entry {
	return []Entry{
		{
			ClassID: "armario",
			DisplayName: map[string]string{
				"es": "Armario", "en": "Wardrobe",
			},
			Keywords: []string{
				"armario", "armarios", "ropero", "roperos", "guardarropa",
				"guardarropas", "placard", "placards", "closet", "closets",
				"locker", "lockers", "wardrobe", "wardrobes", "armoire", "armoires",
			},
			BasePrice:         d(90),
			RequiresAnchoring: true,
			AttributeRules: []AttributeRule{
				{
					Attribute: AttrDoorMechanism,
					Required:  true,
					Values: []ValueDelta{
						{Pattern: `correder|sliding`, Delta: d(20)},
						{Pattern: `abatible|batiente|hinged`, Delta: d(0)},
					},
				},
				{
					Attribute: AttrMirror,
					Values: []ValueDelta{
						{Pattern: `^(si|sí|yes|true)$|espejo|mirror`, Delta: d(15)},
					},
				},
			},
			Extra: &CountableExtra{
				Attribute: AttrDoorCount,
				Allowance: DoorAllowance,
				PerUnit:   d(30),
			},
		},
		{
			ClassID: "cama",
			DisplayName: map[string]string{
				"es": "Cama", "en": "Bed",
			},
			Keywords: []string{
				"cama", "camas", "canape", "canapes", "somier", "somieres",
				"litera", "literas", "nido", "nidos", "tatami", "tatamis",
				"bed", "beds", "ottoman", "ottomans", "bunk bed", "bunk beds",
				"bunkbed", "bunkbeds", "bed frame", "bed frames", "divan", "divans",
			},
			BasePrice: d(60),
			AttributeRules: []AttributeRule{
				{
					Attribute: AttrFrameWidth,
					Required:  true,
					Values: []ValueDelta{
						{Pattern: `\b(90|105)\b`, Delta: d(-10)},
						{Pattern: `\b(135|150)\b`, Delta: d(0)},
						{Pattern: `\b(180|200)\b`, Delta: d(15)},
					},
				},
			},
		},
		{
			ClassID: "comoda",
			DisplayName: map[string]string{
				"es": "Cómoda / Cajonera", "en": "Dresser / Chest of Drawers",
			},
			Keywords: []string{
				"comoda", "comodas", "sinfonier", "sinfonieres", "cajonera",
				"cajoneras", "chifonier", "chifonieres", "dresser", "dressers",
				"chest of drawers", "chests of drawers", "bureau", "bureaus",
				"tallboy", "tallboys",
			},
			BasePrice:         d(50),
			RequiresAnchoring: true,
		},
		{
			ClassID: "mesita_noche",
			DisplayName: map[string]string{
				"es": "Mesita de Noche", "en": "Bedside Table",
			},
			Keywords: []string{
				"mesita de noche", "mesitas de noche", "mesita", "mesitas",
				"mesilla", "mesillas", "mesa de noche", "mesas de noche",
				"nightstand", "nightstands", "bedside table", "bedside tables",
				"bedside cabinet", "bedside cabinets",
			},
			BasePrice: d(30),
		},
		{
			ClassID: "cabecero",
			DisplayName: map[string]string{
				"es": "Cabecero", "en": "Headboard",
			},
			Keywords: []string{
				"cabecero", "cabeceros", "cabezal", "cabezales", "cabecera",
				"cabeceras", "headboard", "headboards",
			},
			BasePrice:         d(45),
			RequiresAnchoring: true,
		},
		{
			ClassID: "mueble_tv",
			DisplayName: map[string]string{
				"es": "Mueble de TV", "en": "TV Stand",
			},
			Keywords: []string{
				"mueble tv", "muebles tv", "mueble de television",
				"muebles de television", "mesa tv", "mesas tv", "mueble salon",
				"muebles salon", "mueble para tv", "muebles para tv",
				"centro de entretenimiento", "centros de entretenimiento",
				"tv stand", "tv stands", "media console", "media consoles",
				"tv unit", "tv units", "entertainment center", "entertainment centers",
			},
			BasePrice:         d(50),
			RequiresAnchoring: true,
		},
		{
			ClassID: "estanteria",
			DisplayName: map[string]string{
				"es": "Estantería / Librería", "en": "Shelving Unit / Bookcase",
			},
			Keywords: []string{
				"estanteria", "estanterias", "libreria", "librerias", "repisa",
				"repisas", "kallax", "billy", "shelving", "shelvings", "bookcase",
				"bookcases", "shelf", "shelves", "shelving unit", "shelving units",
				"book shelf", "book shelves",
			},
			BasePrice:         d(45),
			RequiresAnchoring: true,
		},
		{
			ClassID: "vitrina",
			DisplayName: map[string]string{
				"es": "Vitrina / Aparador", "en": "Display Cabinet / Sideboard",
			},
			Keywords: []string{
				"vitrina", "vitrinas", "aparador", "aparadores", "alacena",
				"alacenas", "credenza", "credenzas", "display cabinet",
				"display cabinets", "sideboard", "sideboards", "buffet",
				"buffets", "hutch", "hutches",
			},
			BasePrice:         d(99),
			RequiresAnchoring: true,
		},
		{
			ClassID: "mesa_centro",
			DisplayName: map[string]string{
				"es": "Mesa de Centro", "en": "Coffee Table",
			},
			Keywords: []string{
				"mesa de centro", "mesas de centro", "mesa baja", "mesas bajas",
				"mesa de cafe", "mesas de cafe", "coffee table", "coffee tables",
				"cocktail table", "cocktail tables",
			},
			BasePrice: d(35),
		},
		{
			ClassID: "mesa_comedor",
			DisplayName: map[string]string{
				"es": "Mesa de Comedor", "en": "Dining Table",
			},
			Keywords: []string{
				"mesa de comedor", "mesas de comedor", "mesa de cocina",
				"mesas de cocina", "mesa", "mesas", "dining table",
				"dining tables", "kitchen table", "kitchen tables",
			},
			BasePrice: d(49),
		},
		{
			ClassID: "silla",
			DisplayName: map[string]string{
				"es": "Silla / Taburete", "en": "Chair / Stool",
			},
			Keywords: []string{
				"silla", "sillas", "asiento", "asientos", "taburete",
				"taburetes", "banqueta", "banquetas", "chair", "chairs",
				"seat", "seats", "stool", "stools",
			},
			BasePrice: d(10),
		},
		{
			ClassID: "sofa",
			DisplayName: map[string]string{
				"es": "Sofá", "en": "Sofa",
			},
			Keywords: []string{
				"sofa", "sofas", "sillon", "sillones", "tresillo", "tresillos",
				"chaise longue", "chaise longues", "couch", "couches", "settee",
				"settees", "loveseat", "loveseats", "lounge", "lounges",
			},
			BasePrice: d(65),
		},
		{
			ClassID: "escritorio",
			DisplayName: map[string]string{
				"es": "Escritorio", "en": "Desk",
			},
			Keywords: []string{
				"escritorio", "escritorios", "buro", "buros", "mesa de estudio",
				"mesas de estudio", "mesa de ordenador", "mesas de ordenador",
				"desk", "desks", "writing desk", "writing desks", "computer desk",
				"computer desks", "study table", "study tables",
			},
			BasePrice: d(45),
		},
		{
			ClassID: "zapatero",
			DisplayName: map[string]string{
				"es": "Zapatero", "en": "Shoe Rack",
			},
			Keywords: []string{
				"zapatero", "zapateros", "mueble zapatero", "muebles zapateros",
				"shoe rack", "shoe racks", "shoe cabinet", "shoe cabinets",
				"shoe storage", "shoe organizer", "shoe organizers",
			},
			BasePrice:         d(60),
			RequiresAnchoring: true,
		},
		{
			ClassID: "panel_decorativo",
			DisplayName: map[string]string{
				"es": "Panel Decorativo", "en": "Decorative Panel",
			},
			Keywords: []string{
				"panel decorativo", "paneles decorativos", "panel de pared",
				"paneles de pared", "revestimiento de pared",
				"revestimientos de pared", "friso", "frisos", "wall panel",
				"wall panels", "slatted panel", "slatted panels", "wainscoting",
			},
			BasePrice:         d(80),
			RequiresAnchoring: true,
		},
		{
			ClassID: "cocina",
			DisplayName: map[string]string{
				"es": "Mueble de Cocina", "en": "Kitchen Cabinet",
			},
			Keywords: []string{
				"cocina", "cocinas", "mueble de cocina", "muebles de cocina",
				"gabinete de cocina", "gabinetes de cocina", "kitchen cabinet",
				"kitchen cabinets", "kitchen unit", "kitchen units",
				"kitchen island", "kitchen islands",
			},
			BasePrice:         d(500),
			RequiresAnchoring: true,
		},
	}
}
