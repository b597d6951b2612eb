// Package seed loads the shared starter catalog of recipes and sides.
package seed

import "github.com/pageza/mealwise/backend/internal/models"

func ing(qty float64, unit, name string) models.Ingredient {
	return models.Ingredient{Name: name, Quantity: qty, Unit: unit}
}

func list(items ...string) models.StringArray { return models.StringArray(items) }

// Recipes is the shared recipe catalog
func Recipes() []models.Recipe {
	return []models.Recipe{
		{
			Name: "Sheet Pan Lemon Chicken", Chef: "Ina Garten", Cuisine: "american", MealType: models.MealDinner,
			PrepMinutes: 15, CookMinutes: 35, Servings: 4, Difficulty: "easy",
			Description: "Chicken thighs roasted with lemon, garlic and potatoes on one pan.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(2, "lb", "chicken thighs"), ing(1, "lb", "baby potatoes"), ing(2, "", "lemons"),
				ing(4, "clove", "garlic"), ing(3, "tbsp", "olive oil"), ing(1, "tsp", "salt"),
			},
			Instructions: list("Heat oven to 425F.", "Toss everything with oil and salt.", "Roast 35 minutes."),
			Tags:         list("one-pot", "gluten-free", "dairy-free"),
			SeasonalTags: list("spring", "autumn"),
		},
		{
			Name: "Weeknight Beef Tacos", Chef: "Rick Bayless", Cuisine: "mexican", MealType: models.MealDinner,
			PrepMinutes: 10, CookMinutes: 15, Servings: 4, Difficulty: "easy",
			Description: "Seasoned ground beef in warm corn tortillas with the usual toppings.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "lb", "ground beef"), ing(8, "", "corn tortillas"), ing(1, "", "onion"),
				ing(2, "tsp", "chili powder"), ing(1, "cup", "cheddar cheese"), ing(1, "cup", "lettuce"),
			},
			Instructions: list("Brown the beef with onion and spices.", "Warm tortillas.", "Fill and top."),
			Tags:         list("kid-friendly", "gluten-free"),
			Allergens:    list("dairy"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Black Bean Tacos", Chef: "Rick Bayless", Cuisine: "mexican", MealType: models.MealDinner,
			PrepMinutes: 10, CookMinutes: 10, Servings: 4, Difficulty: "easy",
			Description: "Smashed black beans with cumin, lime and pickled onion.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(2, "can", "black beans"), ing(8, "", "corn tortillas"), ing(1, "", "red onion"),
				ing(1, "tsp", "cumin"), ing(1, "", "lime"), ing(1, "", "avocado"),
			},
			Instructions: list("Warm and smash the beans with cumin.", "Quick-pickle the onion in lime.", "Assemble."),
			Tags:         list("vegetarian", "vegan", "gluten-free", "dairy-free"),
			SeasonalTags: list("summer"),
		},
		{
			Name: "Spaghetti Bolognese", Chef: "Marcella Hazan", Cuisine: "italian", MealType: models.MealDinner,
			PrepMinutes: 20, CookMinutes: 70, Servings: 6, Difficulty: "medium",
			Description: "Slow simmered meat sauce with milk and tomatoes over spaghetti.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "lb", "ground beef"), ing(1, "lb", "spaghetti"), ing(1, "can", "crushed tomatoes"),
				ing(1, "cup", "milk"), ing(1, "", "onion"), ing(1, "", "carrot"), ing(2, "tbsp", "butter"),
			},
			Instructions: list("Soften onion and carrot in butter.", "Brown beef, add milk, then tomatoes.", "Simmer and toss with pasta."),
			Tags:         list("kid-friendly"),
			Allergens:    list("gluten", "dairy"),
			SeasonalTags: list("winter", "autumn"),
		},
		{
			Name: "Pesto Pasta with Peas", Chef: "Marcella Hazan", Cuisine: "italian", MealType: models.MealDinner,
			PrepMinutes: 5, CookMinutes: 12, Servings: 4, Difficulty: "easy",
			Description: "Basil pesto tossed with short pasta and sweet peas.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "lb", "penne"), ing(0.5, "cup", "basil pesto"), ing(2, "cup", "frozen peas"),
				ing(0.5, "cup", "parmesan cheese"),
			},
			Instructions: list("Boil pasta, adding peas for the last 2 minutes.", "Toss with pesto and parmesan."),
			Tags:         list("vegetarian", "kid-friendly"),
			Allergens:    list("gluten", "dairy", "tree nuts"),
			SeasonalTags: list("spring", "summer"),
		},
		{
			Name: "Chicken Tikka Masala", Chef: "Madhur Jaffrey", Cuisine: "indian", MealType: models.MealDinner,
			PrepMinutes: 20, CookMinutes: 40, Servings: 4, Difficulty: "medium",
			Description: "Yogurt-marinated chicken in a spiced tomato cream sauce.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "lb", "chicken breast"), ing(1, "cup", "plain yogurt"), ing(1, "can", "tomato sauce"),
				ing(0.5, "cup", "heavy cream"), ing(2, "tbsp", "garam masala"), ing(1, "tbsp", "ginger"),
				ing(3, "clove", "garlic"),
			},
			Instructions: list("Marinate chicken in yogurt and spices.", "Sear, then simmer in sauce.", "Finish with cream."),
			Tags:         list("gluten-free"),
			Allergens:    list("dairy"),
			SeasonalTags: list("winter"),
		},
		{
			Name: "Red Lentil Dal", Chef: "Madhur Jaffrey", Cuisine: "indian", MealType: models.MealDinner,
			PrepMinutes: 10, CookMinutes: 30, Servings: 4, Difficulty: "easy",
			Description: "Creamy red lentils tempered with cumin, turmeric and garlic.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "cup", "red lentils"), ing(1, "", "onion"), ing(1, "tsp", "turmeric"),
				ing(1, "tsp", "cumin seeds"), ing(1, "can", "coconut milk"), ing(3, "clove", "garlic"),
			},
			Instructions: list("Simmer lentils with turmeric.", "Fry cumin, onion and garlic.", "Stir into the lentils with coconut milk."),
			Tags:         list("vegetarian", "vegan", "gluten-free", "dairy-free", "one-pot"),
			SeasonalTags: list("winter", "autumn"),
		},
		{
			Name: "Salmon Teriyaki Bowls", Chef: "Kenji Lopez-Alt", Cuisine: "japanese", MealType: models.MealDinner,
			PrepMinutes: 10, CookMinutes: 15, Servings: 4, Difficulty: "easy",
			Description: "Glazed salmon over rice with cucumber and sesame.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "lb", "salmon fillets"), ing(0.25, "cup", "soy sauce"), ing(2, "tbsp", "honey"),
				ing(2, "cup", "rice"), ing(1, "", "cucumber"), ing(1, "tbsp", "sesame seeds"),
			},
			Instructions: list("Cook rice.", "Broil salmon brushed with soy and honey.", "Serve over rice with cucumber."),
			Tags:         list("dairy-free"),
			Allergens:    list("fish", "soy", "sesame"),
			SeasonalTags: list("spring", "summer"),
		},
		{
			Name: "Vegetable Stir-Fry with Tofu", Chef: "Kenji Lopez-Alt", Cuisine: "chinese", MealType: models.MealDinner,
			PrepMinutes: 15, CookMinutes: 10, Servings: 4, Difficulty: "easy",
			Description: "Crisp tofu with broccoli and peppers in a ginger garlic sauce.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(14, "oz", "firm tofu"), ing(1, "head", "broccoli"), ing(2, "", "bell peppers"),
				ing(3, "tbsp", "soy sauce"), ing(1, "tbsp", "ginger"), ing(2, "clove", "garlic"),
			},
			Instructions: list("Press and fry the tofu.", "Stir-fry the vegetables.", "Toss with sauce."),
			Tags:         list("vegetarian", "vegan", "dairy-free", "one-pot"),
			Allergens:    list("soy"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Shrimp Fried Rice", Chef: "Kenji Lopez-Alt", Cuisine: "chinese", MealType: models.MealDinner,
			PrepMinutes: 10, CookMinutes: 12, Servings: 4, Difficulty: "easy",
			Description: "Day-old rice fried with shrimp, egg and scallions.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "lb", "shrimp"), ing(4, "cup", "cooked rice"), ing(3, "", "eggs"),
				ing(4, "", "scallions"), ing(2, "tbsp", "soy sauce"), ing(1, "cup", "frozen peas"),
			},
			Instructions: list("Scramble eggs and set aside.", "Fry shrimp, then rice.", "Return eggs, add peas and sauce."),
			Tags:         list("dairy-free", "one-pot"),
			Allergens:    list("shellfish", "egg", "soy"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Greek Chicken Souvlaki", Chef: "Diane Kochilas", Cuisine: "greek", MealType: models.MealDinner,
			PrepMinutes: 20, CookMinutes: 15, Servings: 4, Difficulty: "medium",
			Description: "Oregano and lemon marinated chicken skewers with tzatziki.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "lb", "chicken breast"), ing(1, "", "lemon"), ing(2, "tsp", "oregano"),
				ing(1, "cup", "greek yogurt"), ing(1, "", "cucumber"), ing(4, "", "pita bread"),
			},
			Instructions: list("Marinate chicken.", "Grill skewers.", "Serve with tzatziki and pita."),
			Allergens:    list("dairy", "gluten"),
			SeasonalTags: list("summer"),
		},
		{
			Name: "Beef and Barley Stew", Chef: "Ina Garten", Cuisine: "american", MealType: models.MealDinner,
			PrepMinutes: 25, CookMinutes: 120, Servings: 6, Difficulty: "medium",
			Description: "Chuck roast braised with barley, carrots and thyme.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(2, "lb", "beef chuck"), ing(0.75, "cup", "pearl barley"), ing(3, "", "carrots"),
				ing(2, "", "celery stalks"), ing(4, "cup", "beef broth"), ing(1, "tsp", "thyme"),
			},
			Instructions: list("Brown the beef.", "Add vegetables, broth and barley.", "Braise two hours."),
			Tags:         list("dairy-free", "one-pot"),
			Allergens:    list("gluten"),
			SeasonalTags: list("winter"),
		},
		{
			Name: "Butternut Squash Risotto", Chef: "Marcella Hazan", Cuisine: "italian", MealType: models.MealDinner,
			PrepMinutes: 15, CookMinutes: 40, Servings: 4, Difficulty: "medium",
			Description: "Arborio rice stirred with roasted squash, sage and parmesan.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "cup", "arborio rice"), ing(1, "", "butternut squash"), ing(6, "cup", "vegetable broth"),
				ing(0.5, "cup", "parmesan cheese"), ing(2, "tbsp", "butter"), ing(6, "", "sage leaves"),
			},
			Instructions: list("Roast the squash.", "Toast rice and add broth gradually.", "Fold in squash, butter and cheese."),
			Tags:         list("vegetarian", "gluten-free"),
			Allergens:    list("dairy"),
			SeasonalTags: list("autumn"),
		},
		{
			Name: "Turkey Chili", Chef: "Ina Garten", Cuisine: "american", MealType: models.MealDinner,
			PrepMinutes: 15, CookMinutes: 45, Servings: 6, Difficulty: "easy",
			Description: "Ground turkey chili with kidney beans and peppers.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1.5, "lb", "ground turkey"), ing(2, "can", "kidney beans"), ing(1, "can", "diced tomatoes"),
				ing(1, "", "onion"), ing(1, "", "bell pepper"), ing(2, "tbsp", "chili powder"),
			},
			Instructions: list("Brown turkey with onion and pepper.", "Add beans, tomatoes and spices.", "Simmer 40 minutes."),
			Tags:         list("gluten-free", "dairy-free", "one-pot", "kid-friendly"),
			SeasonalTags: list("winter", "autumn"),
		},
		{
			Name: "Turkey and Avocado Wraps", Cuisine: "american", MealType: models.MealLunch,
			PrepMinutes: 10, Servings: 2, Difficulty: "easy",
			Description: "Sliced turkey, avocado and greens rolled in tortillas.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(8, "oz", "sliced turkey"), ing(2, "", "flour tortillas"), ing(1, "", "avocado"), ing(1, "cup", "spinach"),
			},
			Instructions: list("Layer fillings on tortillas.", "Roll tightly and halve."),
			Tags:         list("dairy-free", "kid-friendly"),
			Allergens:    list("gluten"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Chickpea Salad Jars", Cuisine: "mediterranean", MealType: models.MealLunch,
			PrepMinutes: 15, Servings: 2, Difficulty: "easy",
			Description: "Chickpeas, cucumber, tomato and feta with lemon dressing.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "can", "chickpeas"), ing(1, "", "cucumber"), ing(1, "cup", "cherry tomatoes"),
				ing(0.5, "cup", "feta cheese"), ing(1, "", "lemon"),
			},
			Instructions: list("Dress chickpeas in lemon.", "Layer vegetables and feta in jars."),
			Tags:         list("vegetarian", "gluten-free"),
			Allergens:    list("dairy"),
			SeasonalTags: list("summer"),
		},
		{
			Name: "Peanut Noodle Lunch Box", Cuisine: "thai", MealType: models.MealLunch,
			PrepMinutes: 15, CookMinutes: 8, Servings: 2, Difficulty: "easy",
			Description: "Cold noodles in peanut sauce with carrots and edamame.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(8, "oz", "rice noodles"), ing(3, "tbsp", "peanut butter"), ing(1, "tbsp", "soy sauce"),
				ing(1, "", "carrot"), ing(1, "cup", "edamame"),
			},
			Instructions: list("Cook and chill noodles.", "Whisk the sauce.", "Toss with vegetables."),
			Tags:         list("vegetarian", "vegan", "dairy-free"),
			Allergens:    list("peanuts", "soy"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Ham and Cheese Sandwiches", Cuisine: "american", MealType: models.MealLunch,
			PrepMinutes: 5, Servings: 2, Difficulty: "easy",
			Description: "The lunchbox classic.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(4, "slice", "bread"), ing(4, "oz", "ham"), ing(2, "slice", "cheddar cheese"), ing(1, "tbsp", "mustard"),
			},
			Instructions: list("Assemble and wrap."),
			Tags:         list("kid-friendly"),
			Allergens:    list("gluten", "dairy"),
			SeasonalTags: list("year-round"),
		},
		{
			Name: "Overnight Oats", Cuisine: "american", MealType: models.MealBreakfast,
			PrepMinutes: 5, Servings: 2, Difficulty: "easy",
			Description: "Oats soaked overnight in milk with berries.",
			Ingredients: models.JSONArray[models.Ingredient]{
				ing(1, "cup", "rolled oats"), ing(1, "cup", "milk"), ing(1, "cup", "blueberries"), ing(1, "tbsp", "maple syrup"),
			},
			Instructions: list("Stir together and refrigerate overnight."),
			Tags:         list("vegetarian"),
			Allergens:    list("dairy"),
			SeasonalTags: list("summer"),
		},
	}
}

// Sides is the shared sides library
func Sides() []models.Side {
	return []models.Side{
		{
			Name: "Roasted Broccoli", Category: models.SideVegetable, PrepMinutes: 20, Servings: 4,
			Cuisines: list("american", "italian"), SeasonalTags: list("winter", "autumn"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1, "head", "broccoli"), ing(2, "tbsp", "olive oil")},
		},
		{
			Name: "Garlic Green Beans", Category: models.SideVegetable, PrepMinutes: 15, Servings: 4,
			Cuisines: list("american", "chinese"), SeasonalTags: list("summer"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1, "lb", "green beans"), ing(2, "clove", "garlic")},
		},
		{
			Name: "Steamed Jasmine Rice", Category: models.SideStarch, PrepMinutes: 20, Servings: 4,
			Cuisines: list("chinese", "japanese", "thai", "indian"), SeasonalTags: list("year-round"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1.5, "cup", "jasmine rice")},
		},
		{
			Name: "Mexican Street Corn", Category: models.SideVegetable, PrepMinutes: 15, Servings: 4,
			Cuisines: list("mexican"), SeasonalTags: list("summer"), Allergens: list("dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(4, "ear", "corn"), ing(0.25, "cup", "cotija cheese"), ing(2, "tbsp", "mayonnaise")},
		},
		{
			Name: "Cilantro Lime Rice", Category: models.SideStarch, PrepMinutes: 20, Servings: 4,
			Cuisines: list("mexican"), SeasonalTags: list("year-round"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1.5, "cup", "rice"), ing(1, "", "lime"), ing(0.25, "cup", "cilantro")},
		},
		{
			Name: "Garlic Bread", Category: models.SideBread, PrepMinutes: 15, Servings: 6,
			Cuisines: list("italian"), SeasonalTags: list("year-round"), Allergens: list("gluten", "dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1, "loaf", "french bread"), ing(4, "tbsp", "butter"), ing(3, "clove", "garlic")},
		},
		{
			Name: "Simple Green Salad", Category: models.SideSalad, PrepMinutes: 10, Servings: 4,
			SeasonalTags: list("spring", "summer"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(6, "cup", "mixed greens"), ing(2, "tbsp", "olive oil"), ing(1, "tbsp", "red wine vinegar")},
		},
		{
			Name: "Cucumber Raita", Category: models.SideOther, PrepMinutes: 10, Servings: 4,
			Cuisines: list("indian"), SeasonalTags: list("summer"), Allergens: list("dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(1, "cup", "plain yogurt"), ing(1, "", "cucumber")},
		},
		{
			Name: "Naan", Category: models.SideBread, PrepMinutes: 10, Servings: 4,
			Cuisines: list("indian"), SeasonalTags: list("year-round"), Allergens: list("gluten", "dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(4, "", "naan")},
		},
		{
			Name: "Greek Salad", Category: models.SideSalad, PrepMinutes: 15, Servings: 4,
			Cuisines: list("greek", "mediterranean"), SeasonalTags: list("summer"), Allergens: list("dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(2, "", "tomatoes"), ing(1, "", "cucumber"), ing(0.5, "cup", "feta cheese"), ing(0.25, "cup", "kalamata olives")},
		},
		{
			Name: "Mashed Potatoes", Category: models.SideStarch, PrepMinutes: 30, Servings: 6,
			Cuisines: list("american"), SeasonalTags: list("winter", "autumn"), Allergens: list("dairy"),
			Ingredients: models.JSONArray[models.Ingredient]{ing(2, "lb", "potatoes"), ing(4, "tbsp", "butter"), ing(0.5, "cup", "milk")},
		},
	}
}
