package classify

// Keyword tables for categorizing line items. Matching is case-insensitive
// substring search against the item description. Exclusions are checked
// first so household goods with incidental automotive words never reach the
// resolver, then automotive terms, then tools.

var automotiveKeywords = []string{
	// Engine and performance
	"brake pad", "brake rotor", "brake disc", "brake shoe", "brake line", "brake fluid", "brake booster",
	"oil filter", "air filter", "fuel filter", "cabin filter", "catalytic converter",
	"spark plug", "glow plug", "ignition coil", "fuel pump", "water pump", "oil pump",
	"alternator", "starter", "car battery", "auto battery", "timing belt", "timing chain",
	"serpentine belt", "drive belt", "radiator hose", "heater hose", "vacuum hose",
	"head gasket", "intake gasket", "exhaust gasket", "transmission fluid", "transmission filter",
	"clutch disc", "clutch plate", "pressure plate", "flywheel", "radiator", "thermostat",
	"cylinder head", "engine block", "piston ring", "connecting rod", "crankshaft",
	"camshaft", "valve cover", "intake manifold", "exhaust manifold", "turbocharger",
	"supercharger", "intercooler", "a/c compressor", "ac compressor", "condenser",
	"evaporator", "expansion valve", "orifice tube", "vapor canister", "charcoal canister",

	// Suspension and steering
	"shock absorber", "strut assembly", "coil spring", "leaf spring", "air spring",
	"tie rod end", "ball joint", "control arm", "sway bar", "stabilizer bar", "anti-roll bar",
	"cv joint", "cv axle", "drive axle", "half shaft", "driveshaft", "prop shaft",
	"steering rack", "rack and pinion", "power steering pump", "steering column",
	"steering wheel", "tie rod", "drag link", "pitman arm", "idler arm",
	"engine mount", "transmission mount", "motor mount", "strut mount",
	"suspension bushing", "control arm bushing", "sway bar bushing",

	// Braking
	"brake caliper", "brake cylinder", "master cylinder", "wheel cylinder",
	"brake drum", "abs module", "abs sensor", "abs pump",

	// Electrical and lighting
	"headlight", "headlamp", "tail light", "turn signal", "fog light", "running light",
	"side mirror", "rearview mirror", "windshield wiper", "wiper blade", "wiper motor",
	"car horn", "hid ballast", "xenon ballast", "led headlight",
	"clock spring", "blower motor", "blower resistor", "hvac blower", "cabin fan",
	"ignition switch", "ignition module", "wiring harness", "engine harness",
	"tpms sensor", "tire pressure sensor", "oxygen sensor", "o2 sensor",
	"map sensor", "maf sensor", "throttle position", "crankshaft sensor", "camshaft sensor",
	"coolant temp sensor", "oil pressure sensor", "fuel level sensor",

	// Body and interior
	"car bumper", "front bumper", "rear bumper", "fender", "quarter panel",
	"car door", "door handle", "door lock", "door latch", "window regulator",
	"car seat", "driver seat", "passenger seat", "seat belt", "center console",
	"dashboard", "instrument panel", "glove box", "sun visor",
	"weatherstrip", "door seal", "window seal", "trunk seal", "hood seal",
	"car antenna", "radio antenna", "power antenna",

	// Wheels and tires
	"car wheel", "alloy wheel", "steel wheel", "wheel hub", "hub assembly",
	"lug nut", "wheel stud", "hub cap", "center cap", "valve stem",
	"wheel bearing", "hub bearing", "tire valve", "tpms valve",

	// Exhaust
	"exhaust pipe", "muffler", "exhaust clamp", "tail pipe", "resonator",

	// HVAC
	"heater core", "evaporator core", "a/c evaporator",
	"hvac control", "climate control", "temperature blend door",

	// Trucks and heavy duty
	"freightliner", "peterbilt", "kenworth", "semi truck", "fifth wheel",
	"kingpin", "glad hand", "air brake", "diesel fuel", "def fluid",
	"urea tank", "dpf filter", "scr system",
}

var toolKeywords = []string{
	// Power tools
	"angle grinder", "circular saw", "jigsaw", "rotary hammer", "demolition hammer",
	"electric drill", "cordless drill", "impact driver", "driver drill", "hammer drill",
	"reciprocating saw", "recip saw", "band saw", "miter saw", "table saw",
	"orbital sander", "belt sander", "palm sander", "router tool", "trim router",
	"chainsaw", "pole saw", "leaf blower", "pressure washer", "shop vac",

	// Hand tools and sets
	"hand tool", "tool kit", "tool set", "mechanic tool set", "wrench set",
	"socket set", "ratchet set", "combination wrench", "box wrench", "open wrench",
	"torque wrench", "breaker bar", "extension bar", "universal joint",
	"screwdriver set", "bit set", "hex key", "allen wrench", "pliers set",
	"needle nose", "wire strippers", "cutting pliers", "locking pliers",

	// Workshop equipment and storage
	"toolbox", "tool chest", "tool cabinet", "tool cart", "rolling cart",
	"work bench", "workbench", "shop stool", "creeper", "mechanics creeper",
	"work light", "shop light", "led work light", "trouble light",
	"air compressor", "shop compressor", "portable compressor",
	"bench vise", "pipe vise", "anvil", "shop press",

	// Automotive service tools (tools, not parts)
	"floor jack", "bottle jack", "scissor jack", "transmission jack",
	"engine hoist", "cherry picker", "porta power", "engine stand",
	"tire changer", "wheel balancer", "bead breaker", "tire iron", "lug wrench",
	"oil drain pan", "funnel set", "magnetic drain plug",

	// Diagnostic and test equipment
	"multimeter", "digital multimeter", "code reader", "scan tool", "obd scanner",
	"oscilloscope", "function generator", "battery tester",
	"compression tester", "leak tester", "timing light", "stroboscope",

	// Fasteners and safety
	"bolt assortment", "screw assortment", "nut assortment", "washer assortment",
	"cotter pin", "clevis pin", "hitch pin", "spring pin", "roll pin",
	"safety glasses", "work gloves", "shop gloves", "hearing protection",
	"knee pads", "back support", "shop apron",
}

// exclusionKeywords mark items that are clearly not automotive regardless of
// any overlapping words, checked before both other sets.
var exclusionKeywords = []string{
	// Home and kitchen
	"kitchen", "cooking", "recipe", "food", "dining", "tableware", "cookware",
	"coffee", "tea", "beverage", "bottle opener", "can opener",
	"cutting board", "knife set", "silverware", "dishwasher", "microwave",

	// Personal items
	"clothing", "shirt", "pants", "jacket", "shoes", "boots",
	"watch", "jewelry", "necklace", "wallet", "purse",

	// Consumer electronics
	"phone", "tablet", "laptop", "computer", "monitor", "keyboard", "mouse",
	"headphones", "speaker", "bluetooth", "usb cable", "charger",
	"camera", "television", "remote control",

	// Home improvement and garden
	"paint", "ladder", "garden", "lawn", "plant", "seed",
	"fertilizer", "pesticide", "sprinkler", "hose nozzle", "watering",

	// Office
	"paper", "pencil", "marker", "notebook", "binder", "stapler",
	"calculator", "desk", "filing cabinet",
}
