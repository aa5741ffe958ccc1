package drug

// brandToGeneric maps common brand names (folded, single token) to their generic
// names. Unknown brands fall through untouched and are matched lexically.
var brandToGeneric = map[string]string{
	"amoxil":      "amoxicillin",
	"augmentin":   "amoxicillin clavulanate",
	"clavulin":    "amoxicillin clavulanate",
	"tylenol":     "acetaminophen",
	"panadol":     "acetaminophen",
	"paracetamol": "acetaminophen",
	"advil":       "ibuprofen",
	"motrin":      "ibuprofen",
	"lipitor":     "atorvastatin",
	"zocor":       "simvastatin",
	"crestor":     "rosuvastatin",
	"glucophage":  "metformin",
	"lasix":       "furosemide",
	"coumadin":    "warfarin",
	"ventolin":    "salbutamol",
	"albuterol":   "salbutamol",
	"zithromax":   "azithromycin",
	"cipro":       "ciprofloxacin",
	"keflex":      "cephalexin",
	"synthroid":   "levothyroxine",
	"eltroxin":    "levothyroxine",
	"norvasc":     "amlodipine",
	"losec":       "omeprazole",
	"prilosec":    "omeprazole",
	"nexium":      "esomeprazole",
	"lovenox":     "enoxaparin",
	"epipen":      "epinephrine",
	"adrenaline":  "epinephrine",
	"lantus":      "insulin glargine",
	"humulin":     "insulin human",
	"zofran":      "ondansetron",
	"toradol":     "ketorolac",
	"valium":      "diazepam",
	"ativan":      "lorazepam",
	"decadron":    "dexamethasone",
	"solumedrol":  "methylprednisolone",
	"flagyl":      "metronidazole",
	"vancocin":    "vancomycin",
}

// Generic returns the generic name for a folded brand token.
func Generic(token string) (string, bool) {
	g, ok := brandToGeneric[token]
	return g, ok
}
