package catalog

// Default returns the built-in catalog configuration: foods with nutrition
// per 100g, meal compositions, option buckets and the weekly schedule.
func Default() Data {
	return Data{
		Foods:        defaultFoods(),
		Compositions: defaultCompositions(),
		Options:      defaultOptions(),
		Titles:       defaultTitles(),
		Week:         defaultWeek(),
	}
}

// MustDefault builds the default catalog and panics if it does not validate.
func MustDefault() *Catalog {
	c, err := New(Default())
	if err != nil {
		panic(err)
	}
	return c
}

func food(id, name, category string, portion float64, n NutritionProfile) FoodItem {
	return FoodItem{ID: id, Name: name, Nutrition: n, DefaultPortionGrams: portion, Category: category}
}

func defaultFoods() []FoodItem {
	return []FoodItem{
		food("cuscuz", "Cuscuz", "grains", 100, NutritionProfile{112, 3.8, 23, 0.2, 1.4, 1, 0.2}),
		food("arroz_branco", "Arroz branco cozido", "grains", 100, NutritionProfile{130, 2.7, 28, 0.3, 0.4, 1, 0.1}),
		food("macarrao_integral", "Macarrão integral", "grains", 100, NutritionProfile{124, 5, 25, 1.1, 3.9, 3, 1.8}),
		food("pao_integral", "Pão integral", "grains", 50, NutritionProfile{247, 13, 41, 4.2, 7, 681, 6}),
		food("tapioca", "Goma de tapioca", "grains", 30, NutritionProfile{358, 1.2, 88, 0.3, 1.4, 1, 3.3}),
		food("aveia", "Aveia em flocos", "grains", 30, NutritionProfile{389, 16.9, 66.3, 6.9, 10.6, 2, 0.99}),

		food("frango_cozido", "Frango cozido/desfiado", "protein", 100, NutritionProfile{165, 31, 0, 3.6, 0, 74, 0}),
		food("patinho_moido", "Patinho moído magro", "protein", 100, NutritionProfile{158, 26, 0, 5.1, 0, 65, 0}),
		food("ovo", "Ovo de galinha", "protein", 60, NutritionProfile{155, 13, 1.1, 11, 0, 142, 1.1}),
		food("peixe", "Peixe grelhado", "protein", 120, NutritionProfile{136, 25, 0, 3.0, 0, 59, 0}),

		food("queijo_minas", "Queijo minas frescal light", "dairy", 30, NutritionProfile{264, 17.4, 3.8, 20, 0, 346, 3.8}),
		food("requeijao_light", "Requeijão light", "dairy", 30, NutritionProfile{176, 11, 7, 12, 0, 842, 7}),
		food("iogurte_pro", "Iogurte Pro Itambé", "dairy", 120, NutritionProfile{58, 10, 4.1, 0, 0, 47, 4.1}),

		food("brocolis", "Brócolis cozido", "vegetables", 100, NutritionProfile{35, 2.4, 7, 0.4, 3.3, 41, 2.2}),
		food("couve", "Couve refogada", "vegetables", 100, NutritionProfile{31, 2.9, 5.7, 0.7, 3.7, 38, 2.3}),
		food("legumes_vapor", "Legumes no vapor (mix)", "vegetables", 100, NutritionProfile{45, 2.1, 8.8, 0.3, 3.2, 15, 4.1}),

		food("feijao", "Feijão cozido", "legumes", 50, NutritionProfile{91, 4.8, 16, 0.5, 7.4, 2, 0.3}),

		food("banana", "Banana nanica", "fruits", 75, NutritionProfile{87, 1.1, 23, 0.3, 2.6, 1, 12}),
		food("maca", "Maçã com casca", "fruits", 150, NutritionProfile{52, 0.3, 14, 0.2, 2.4, 1, 10}),
		food("uva", "Uva rosada", "fruits", 100, NutritionProfile{69, 0.7, 18, 0.2, 0.9, 2, 16}),
		food("mamao", "Mamão formosa", "fruits", 100, NutritionProfile{40, 0.5, 10, 0.3, 1.7, 8, 7.8}),
		food("melao", "Melão", "fruits", 115, NutritionProfile{29, 0.7, 7.5, 0.2, 0.8, 18, 6.2}),

		food("chia", "Semente de chia", "seeds", 10, NutritionProfile{486, 16.5, 42.1, 30.7, 34.4, 16, 0}),
		food("castanha_caju", "Castanha de caju", "nuts", 20, NutritionProfile{553, 18.2, 30.2, 43.8, 3.3, 12, 5.9}),
		food("whey_protein", "Whey Protein 100% Pure", "supplements", 30, NutritionProfile{410, 82, 8, 6, 0, 300, 8}),
		food("cafe", "Café sem açúcar", "beverages", 150, NutritionProfile{2, 0.1, 0, 0, 0, 2, 0}),
	}
}

func defaultCompositions() map[string][]Ingredient {
	return map[string][]Ingredient{
		"bf-cuscuz-ovos":          {{"cuscuz", 60}, {"chia", 10}, {"ovo", 120}, {"queijo_minas", 30}, {"cafe", 150}},
		"bf-tapioca-frango":       {{"tapioca", 30}, {"chia", 10}, {"frango_cozido", 60}, {"requeijao_light", 15}, {"cafe", 150}},
		"bf-sanduiche-ovos":       {{"pao_integral", 100}, {"ovo", 120}, {"queijo_minas", 30}, {"cafe", 150}},
		"bf-bisnaguitos":          {{"pao_integral", 75}, {"queijo_minas", 30}, {"requeijao_light", 15}},
		"bf-paoqueijo-frigideira": {{"ovo", 120}, {"requeijao_light", 20}, {"queijo_minas", 20}, {"banana", 75}, {"aveia", 15}, {"cafe", 150}},

		"sm-banana": {{"banana", 75}},
		"sm-maca":   {{"maca", 150}},
		"sm-uvas":   {{"uva", 84}},
		"sm-mamao":  {{"mamao", 100}},
		"sm-melao":  {{"melao", 115}},

		"ln-principal":           {{"frango_cozido", 80}, {"arroz_branco", 60}, {"feijao", 50}, {"legumes_vapor", 100}, {"brocolis", 50}},
		"ln-macarrao-fit":        {{"macarrao_integral", 75}, {"patinho_moido", 60}, {"queijo_minas", 30}},
		"ln-arroz-couve-legumes": {{"frango_cozido", 80}, {"arroz_branco", 45}, {"couve", 100}, {"legumes_vapor", 100}},
		"ln-almondega-brocolis":  {{"patinho_moido", 75}, {"arroz_branco", 60}, {"brocolis", 60}},

		"sa-iogurte-tribos": {{"iogurte_pro", 120}},
		"sa-banana-whey":    {{"banana", 150}, {"whey_protein", 30}, {"aveia", 15}},
		"sa-paes-requeijao": {{"pao_integral", 100}, {"requeijao_light", 30}, {"queijo_minas", 30}},
		"sa-shake":          {{"banana", 150}, {"whey_protein", 30}},

		"dn-cuscuz-proteina":  {{"cuscuz", 60}, {"chia", 10}, {"requeijao_light", 15}, {"patinho_moido", 60}},
		"dn-hamburguer-fit":   {{"pao_integral", 100}, {"patinho_moido", 75}, {"queijo_minas", 30}},
		"dn-pizza-frigideira": {{"pao_integral", 60}, {"frango_cozido", 80}, {"queijo_minas", 30}},
		"dn-brusqueta-suco":   {{"pao_integral", 75}, {"queijo_minas", 30}},

		"sp-iogurte-tribos":    {{"iogurte_pro", 120}},
		"sp-iogurte-castanhas": {{"iogurte_pro", 170}, {"castanha_caju", 20}},
		"sp-torrada-requeijao": {{"pao_integral", 50}, {"requeijao_light", 30}},
	}
}

func defaultTitles() map[MealSlotType]string {
	return map[MealSlotType]string{
		Breakfast:      "Café da manhã",
		SnackMorning:   "Colação",
		Lunch:          "Almoço",
		SnackAfternoon: "Lanche da tarde",
		Dinner:         "Jantar",
		Supper:         "Ceia",
	}
}

func defaultOptions() map[MealSlotType][]MealOption {
	return map[MealSlotType][]MealOption{
		Breakfast: {
			{ID: "bf-cuscuz-ovos", Label: "Cuscuz + ovos", Items: []string{
				"4 col. sopa de cuscuz",
				"1 col. sobremesa de chia",
				"2 ovos",
				"1 fatia pequena de queijo minas frescal light",
				"Café (150 ml) com mínimo açúcar",
			}},
			{ID: "bf-tapioca-frango", Label: "Tapioca + frango", Items: []string{
				"2 col. sopa de goma para tapioca hidratada",
				"1 col. sobremesa de chia",
				"4 col. sopa de frango cozido/desfiado",
				"1 col. sopa de requeijão light",
				"Café sem açúcar",
			}},
			{ID: "bf-sanduiche-ovos", Label: "Sanduíche integral", Items: []string{
				"2 fatias de pão integral",
				"2 ovos ou frango desfiado",
				"Queijo minas ou requeijão light",
				"Café sem açúcar",
			}},
			{ID: "bf-bisnaguitos", Label: "Bisnaguitos recheados", Items: []string{
				"3 bisnaguitos integrais",
				"2 col. sobremesa de creme de ricota",
				"2 fatias pequenas de queijo minas",
			}},
			{ID: "bf-paoqueijo-frigideira", Label: "Pão de queijo de frigideira + fruta", Items: []string{
				"2 ovos + requeijão + queijo ralado (tipo panqueca)",
				"1 porção de fruta (100g mamão ou 115g melão ou 7 uvas)",
				"1 col. sopa de aveia + café sem açúcar",
			}},
		},
		SnackMorning: {
			{ID: "sm-banana", Label: "Banana", Items: []string{"1 banana média (75g)"}},
			{ID: "sm-maca", Label: "Maçã", Items: []string{"1 maçã pequena"}},
			{ID: "sm-uvas", Label: "Uvas", Items: []string{"12 uvas pequenas"}},
			{ID: "sm-ameixa", Label: "Ameixa", Items: []string{"1 ameixa vermelha (70g)"}},
			{ID: "sm-abacaxi", Label: "Abacaxi", Items: []string{"2 fatias pequenas de abacaxi (50g)"}},
			{ID: "sm-melao", Label: "Melão", Items: []string{"115g de melão"}},
			{ID: "sm-mamao", Label: "Mamão", Items: []string{"100g de mamão"}},
		},
		Lunch: {
			{ID: "ln-principal", Label: "Prato principal", Items: []string{
				"Salada crua à vontade (≥3 tipos)",
				"80g frango cozido ou 70g patinho ou 120g peixe",
				"4 col. sopa de arroz branco ou cuscuz",
				"2 col. sopa de feijão (grãos)",
				"5 col. sopa de legumes no vapor",
				"1 col. sopa de farofa fit",
			}},
			{ID: "ln-macarrao-fit", Label: "Macarronada fit", Items: []string{
				"5 garfadas de macarrão integral cozido",
				"4 col. sopa de patinho moído ou 5 col. de frango",
				"1 fatia de queijo minas",
				"2 col. sopa de molho de tomate",
			}},
			{ID: "ln-arroz-couve-legumes", Label: "Arroz + couve + legumes", Items: []string{
				"3 col. de servir de couve cozida",
				"2 col. de servir de legumes no vapor",
				"3 col. sopa de arroz branco",
				"Frango ou carne (mesmas quantidades)",
			}},
			{ID: "ln-almondega-brocolis", Label: "Almôndega + arroz de brócolis", Items: []string{
				"5 col. sopa de patinho moído (almôndegas)",
				"Tempero a gosto (alho, cebola, aveia, etc.)",
				"2 col. sopa de arroz + 2 col. sopa de brócolis",
				"1 col. sobremesa de azeite de oliva",
			}},
		},
		SnackAfternoon: {
			{ID: "sa-paes-requeijao", Label: "Pães integrais + queijo", Items: []string{
				"2 pães integrais ou bisnaguinhas",
				"2 col. sopa de requeijão",
				"2 fatias pequenas de queijo minas",
				"1 col. chá de orégano seco",
			}},
			{ID: "sa-iogurte-tribos", Label: "Iogurte + biscoito integral de cacau", Items: []string{
				"1 potinho (120g) de iogurte proteico",
				"7 unidades de biscoito integral de cacau",
			}},
			{ID: "sa-banana-whey", Label: "Banana com whey", Items: []string{
				"2 bananas médias",
				"1 dosador de whey (sem marca)",
				"1 col. sopa de aveia ou 1 col. sobremesa de chia",
			}},
			{ID: "sa-shake", Label: "Shake com polpa", Items: []string{
				"2 bananas + 1 polpa (morango/acerola/goiaba) + 100ml água",
				"1 dosador de whey",
				"Bater com gelo",
			}},
		},
		Dinner: {
			{ID: "dn-cuscuz-proteina", Label: "Cuscuz + proteína", Items: []string{
				"4 col. sopa de cuscuz",
				"1 col. sobremesa de chia",
				"1 col. sopa de requeijão light",
				"4 col. sopa de patinho moído ou 5 col. sopa de frango",
			}},
			{ID: "dn-hamburguer-fit", Label: "Hambúrguer fit", Items: []string{
				"2 fatias de pão integral",
				"5 col. sopa de patinho moído",
				"2 col. sopa de molho de tomate + 1 fatia queijo minas",
				"Cebola refogada (1 col. sopa cheia)",
			}},
			{ID: "dn-pizza-frigideira", Label: "Pizza de frigideira", Items: []string{
				"1 unidade de pão folha integral (wrap)",
				"Frango ou carne + queijo + molho de tomate",
				"Temperos: orégano, tomate, etc.",
			}},
			{ID: "dn-brusqueta-suco", Label: "Brusqueta + suco", Items: []string{
				"3 fatias de pão integral",
				"2 col. sopa de molho de tomate",
				"2 fatias de queijo minas + orégano",
				"Suco natural (maracujá/goiaba/acerola) com 150ml água",
			}},
		},
		Supper: {
			{ID: "sp-iogurte-tribos", Label: "Iogurte + biscoito integral", Items: []string{
				"1 iogurte proteico (120g)",
				"4 unidades de biscoito integral de cacau",
			}},
			{ID: "sp-pipoca-pate", Label: "Pipoca + patê de queijo", Items: []string{
				"2 col. sopa de milho para pipoca",
				"Patê: 1 fatia de queijo minas + 1 col. sopa de requeijão",
			}},
			{ID: "sp-iogurte-castanhas", Label: "Iogurte + castanhas", Items: []string{
				"1 pote de iogurte proteico (170g) ou desnatado (150g)",
				"8 unidades de castanha de caju torrada sem sal",
			}},
			{ID: "sp-torrada-requeijao", Label: "Torradas + requeijão", Items: []string{
				"4 torradas integrais",
				"4 col. sobremesa de requeijão",
			}},
		},
	}
}

func meals(times [6]string, options [6]string) map[MealSlotType]DaySlot {
	m := make(map[MealSlotType]DaySlot, len(times))
	for i, slot := range Slots() {
		m[slot] = DaySlot{Time: times[i], DefaultOptionID: options[i]}
	}
	return m
}

func defaultWeek() []DayPlan {
	morningGym := func() *GymSchedule { return &GymSchedule{Start: "06:40", End: "08:00"} }

	return []DayPlan{
		{
			ID: "seg", Label: "Segunda",
			Work: &WorkSchedule{Start: "09:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"},
			Gym:  morningGym(),
			Meals: meals(
				[6]string{"08:10", "06:20", "12:30", "17:15", "19:30", "21:30"},
				[6]string{"bf-cuscuz-ovos", "sm-banana", "ln-principal", "sa-iogurte-tribos", "dn-hamburguer-fit", "sp-pipoca-pate"},
			),
		},
		{
			ID: "ter", Label: "Terça",
			Work: &WorkSchedule{Start: "09:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"},
			Gym:  morningGym(),
			Meals: meals(
				[6]string{"08:10", "06:20", "12:30", "17:15", "19:30", "21:30"},
				[6]string{"bf-tapioca-frango", "sm-maca", "ln-macarrao-fit", "sa-banana-whey", "dn-pizza-frigideira", "sp-iogurte-castanhas"},
			),
		},
		{
			ID: "qua", Label: "Quarta",
			Work: &WorkSchedule{Start: "12:00", End: "20:00", BreakStart: "16:00", BreakEnd: "17:00"},
			Gym:  morningGym(),
			Meals: meals(
				[6]string{"08:15", "06:20", "11:30", "17:30", "20:30", "21:30"},
				[6]string{"bf-sanduiche-ovos", "sm-uvas", "ln-arroz-couve-legumes", "sa-shake", "dn-brusqueta-suco", "sp-torrada-requeijao"},
			),
		},
		{
			ID: "qui", Label: "Quinta",
			Work: &WorkSchedule{Start: "14:00", End: "18:00"},
			Gym:  morningGym(),
			Meals: meals(
				[6]string{"08:15", "10:15", "12:30", "16:00", "19:30", "21:30"},
				[6]string{"bf-bisnaguitos", "sm-ameixa", "ln-almondega-brocolis", "sa-paes-requeijao", "dn-cuscuz-proteina", "sp-iogurte-tribos"},
			),
		},
		{
			ID: "sex", Label: "Sexta",
			Work: &WorkSchedule{Start: "12:00", End: "20:00", BreakStart: "16:00", BreakEnd: "17:00"},
			Gym:  morningGym(),
			Meals: meals(
				[6]string{"08:15", "06:20", "11:30", "17:30", "20:30", "21:30"},
				[6]string{"bf-paoqueijo-frigideira", "sm-abacaxi", "ln-principal", "sa-iogurte-tribos", "dn-pizza-frigideira", "sp-iogurte-castanhas"},
			),
		},
		{
			ID: "sab", Label: "Sábado",
			Work: &WorkSchedule{Start: "07:30", End: "16:30", BreakStart: "12:00", BreakEnd: "13:00"},
			Meals: meals(
				[6]string{"06:50", "10:00", "12:30", "17:00", "19:30", "21:30"},
				[6]string{"bf-sanduiche-ovos", "sm-melao", "ln-macarrao-fit", "sa-shake", "dn-cuscuz-proteina", "sp-pipoca-pate"},
			),
		},
		{
			ID: "dom", Label: "Domingo",
			Meals: meals(
				[6]string{"07:20", "10:00", "12:30", "15:30", "19:30", "21:30"},
				[6]string{"bf-tapioca-frango", "sm-mamao", "ln-principal", "sa-paes-requeijao", "dn-hamburguer-fit", "sp-iogurte-tribos"},
			),
		},
	}
}
