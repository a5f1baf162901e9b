package foodprefs

import "strings"

// Food is one selectable item on the onboarding screen.
type Food struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups onboarding foods. Dairy is kept apart from proteins.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Foods []Food `json:"foods"`
}

var categories = []Category{
	{
		ID: "proteins", Name: "Proteínas (Misturas)", Icon: "🥩",
		Foods: []Food{
			{"carne_bovina_patinho", "Carne bovina (patinho)"},
			{"carne_bovina_alcatra", "Carne bovina (alcatra)"},
			{"frango_peito", "Frango (peito)"},
			{"frango_coxa", "Frango (coxa)"},
			{"peixe_tilapia", "Peixe (tilápia)"},
			{"peixe_sardinha", "Peixe (sardinha)"},
			{"ovos", "Ovos"},
			{"lentilha", "Lentilha"},
			{"grao_de_bico", "Grão de bico"},
			{"feijao", "Feijão"},
			{"tofu", "Tofu"},
		},
	},
	{
		ID: "carbs", Name: "Carboidratos", Icon: "🌾",
		Foods: []Food{
			{"arroz_integral", "Arroz integral"},
			{"macarrao_integral", "Macarrão integral"},
			{"batata_doce", "Batata-doce"},
			{"mandioca", "Mandioca"},
			{"cuscuz", "Cuscuz"},
			{"tapioca", "Tapioca"},
			{"pao_integral", "Pão integral"},
			{"aveia", "Aveia"},
			{"quinoa", "Quinoa"},
		},
	},
	{
		ID: "vegetables", Name: "Legumes e Verduras", Icon: "🥬",
		Foods: []Food{
			{"brocolis", "Brócolis"},
			{"couve_flor", "Couve-flor"},
			{"cenoura", "Cenoura"},
			{"abobrinha", "Abobrinha"},
			{"berinjela", "Berinjela"},
			{"espinafre", "Espinafre"},
			{"alface", "Alface"},
			{"tomate", "Tomate"},
			{"pepino", "Pepino"},
			{"vagem", "Vagem"},
			{"quiabo", "Quiabo"},
			{"pimentao", "Pimentão"},
		},
	},
	{
		ID: "fruits", Name: "Frutas", Icon: "🍎",
		Foods: []Food{
			{"banana", "Banana"},
			{"maca", "Maçã"},
			{"morango", "Morango"},
			{"uva", "Uva"},
			{"laranja", "Laranja"},
			{"abacaxi", "Abacaxi"},
			{"mamao", "Mamão"},
			{"manga", "Manga"},
			{"melancia", "Melancia"},
			{"pera", "Pera"},
			{"ameixa", "Ameixa"},
		},
	},
	{
		ID: "fats", Name: "Gorduras Boas", Icon: "🥑",
		Foods: []Food{
			{"abacate", "Abacate"},
			{"azeite_extra_virgem", "Azeite extra virgem"},
			{"castanha_caju", "Castanha de caju"},
			{"castanha_para", "Castanha do Pará"},
			{"amendoas", "Amêndoas"},
			{"nozes", "Nozes"},
			{"chia", "Semente de chia"},
			{"linhaca", "Semente de linhaça"},
			{"girassol", "Semente de girassol"},
		},
	},
	{
		ID: "snacks", Name: "Snacks Saudáveis", Icon: "🍿",
		Foods: []Food{
			{"pipoca", "Pipoca (sem óleo)"},
			{"biscoito_arroz", "Biscoito de arroz"},
			{"frutas_secas", "Frutas secas"},
			{"ovos_cozidos", "Ovos cozidos"},
			{"palitos_vegetais", "Palitos de cenoura/pepino"},
		},
	},
	{
		ID: "dairy", Name: "Laticínios e Derivados", Icon: "🧀",
		Foods: []Food{
			{"leite", "Leite"},
			{"queijo_minas", "Queijo minas"},
			{"iogurte_natural", "Iogurte natural"},
		},
	},
}

var knownFoods = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, c := range categories {
		for _, f := range c.Foods {
			m[f.ID] = struct{}{}
		}
	}
	return m
}()

// Categories returns the onboarding categories. A non-empty query keeps
// only foods whose name contains it (case-insensitive) and drops
// categories left empty.
func Categories(query string) []Category {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		foods := make([]Food, 0, len(c.Foods))
		for _, f := range c.Foods {
			if q == "" || strings.Contains(strings.ToLower(f.Name), q) {
				foods = append(foods, f)
			}
		}
		if q != "" && len(foods) == 0 {
			continue
		}
		c.Foods = foods
		out = append(out, c)
	}
	return out
}

// IsKnownFood reports whether id appears in any category.
func IsKnownFood(id string) bool {
	_, ok := knownFoods[id]
	return ok
}
