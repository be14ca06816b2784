package service

import "restaurant/internal/model"

const imageBase = "https://images.pexels.com/photos/"

func demoCategories() []model.MenuCategory {
	return []model.MenuCategory{
		{ID: "1", Name: "Entradas", Description: "Pratos para começar bem a refeição", Order: 1, Active: true},
		{ID: "2", Name: "Pratos Principais", Description: "Nossos pratos principais irresistíveis", Order: 2, Active: true},
		{ID: "3", Name: "Pizzas", Description: "Pizzas artesanais com massa própria", Order: 3, Active: true},
		{ID: "4", Name: "Bebidas", Description: "Bebidas geladas e quentes", Order: 4, Active: true},
		{ID: "5", Name: "Sobremesas", Description: "Finalize sua refeição com doçura", Order: 5, Active: true},
	}
}

func demoItems() []model.MenuItem {
	return []model.MenuItem{
		{
			ID: "1", Name: "Bruschetta Italiana",
			Description: "Pão artesanal tostado com tomate, manjericão fresco e azeite extra virgem",
			Price:       price("18.90"), Category: "Entradas", Image: imageBase + "5710192/pexels-photo-5710192.jpeg",
			Available: true, Ingredients: []string{"Pão artesanal", "Tomate", "Manjericão", "Azeite"}, PrepMinutes: 10,
		},
		{
			ID: "2", Name: "Batata Rústica",
			Description: "Batatas temperadas com ervas e assadas no forno, servidas com molho especial",
			Price:       price("16.90"), Category: "Entradas", Image: imageBase + "1893556/pexels-photo-1893556.jpeg",
			Available: true, Ingredients: []string{"Batata", "Ervas", "Molho especial"}, PrepMinutes: 15,
		},
		{
			ID: "3", Name: "Hambúrguer Artesanal",
			Description: "Pão brioche, hamburger 180g, queijo, alface, tomate, cebola caramelizada",
			Price:       price("28.90"), Category: "Pratos Principais", Image: imageBase + "1639557/pexels-photo-1639557.jpeg",
			Available: true, Ingredients: []string{"Pão brioche", "Carne 180g", "Queijo", "Vegetais"}, PrepMinutes: 20,
		},
		{
			ID: "4", Name: "Salmão Grelhado",
			Description: "Filé de salmão grelhado com legumes salteados e molho de maracujá",
			Price:       price("42.90"), Category: "Pratos Principais", Image: imageBase + "3535383/pexels-photo-3535383.jpeg",
			Available: true, Ingredients: []string{"Salmão fresco", "Legumes", "Molho maracujá"}, PrepMinutes: 25,
		},
		{
			ID: "5", Name: "Risotto de Camarão",
			Description: "Risotto cremoso com camarões frescos, aspargos e parmesão",
			Price:       price("38.90"), Category: "Pratos Principais", Image: imageBase + "8753657/pexels-photo-8753657.jpeg",
			Available: true, Ingredients: []string{"Arroz arbóreo", "Camarões", "Aspargos", "Parmesão"}, PrepMinutes: 30,
		},
		{
			ID: "6", Name: "Pizza Margherita",
			Description: "Molho de tomate, mussarela, manjericão fresco e azeite",
			Price:       price("35.90"), Category: "Pizzas", Image: imageBase + "315755/pexels-photo-315755.jpeg",
			Available: true, Ingredients: []string{"Molho tomate", "Mussarela", "Manjericão"}, PrepMinutes: 18,
		},
		{
			ID: "7", Name: "Pizza Pepperoni",
			Description: "Molho de tomate, mussarela e generosas fatias de pepperoni",
			Price:       price("39.90"), Category: "Pizzas", Image: imageBase + "13993627/pexels-photo-13993627.jpeg",
			Available: true, Ingredients: []string{"Molho tomate", "Mussarela", "Pepperoni"}, PrepMinutes: 18,
		},
		{
			ID: "8", Name: "Pizza Quatro Queijos",
			Description: "Mussarela, gorgonzola, parmesão e provolone",
			Price:       price("41.90"), Category: "Pizzas", Image: imageBase + "4394612/pexels-photo-4394612.jpeg",
			Available: true, Ingredients: []string{"Mussarela", "Gorgonzola", "Parmesão", "Provolone"}, PrepMinutes: 18,
		},
		{
			ID: "9", Name: "Suco Natural de Laranja",
			Description: "Suco de laranja natural, extraído na hora",
			Price:       price("8.90"), Category: "Bebidas", Image: imageBase + "96974/pexels-photo-96974.jpeg",
			Available: true, Ingredients: []string{"Laranja fresca"}, PrepMinutes: 5,
		},
		{
			ID: "10", Name: "Refrigerante Lata",
			Description: "Coca-cola, Guaraná, Sprite - 350ml",
			Price:       price("6.50"), Category: "Bebidas", Image: imageBase + "50593/coca-cola-cold-drink-soft-drink-coke-50593.jpeg",
			Available: true, PrepMinutes: 2,
		},
		{
			ID: "11", Name: "Água Mineral",
			Description: "Água mineral 500ml - Com gás ou sem gás",
			Price:       price("4.50"), Category: "Bebidas", Image: imageBase + "327090/pexels-photo-327090.jpeg",
			Available: true, PrepMinutes: 2,
		},
		{
			ID: "12", Name: "Petit Gâteau",
			Description: "Bolinho de chocolate quente com sorvete de baunilha",
			Price:       price("16.90"), Category: "Sobremesas", Image: imageBase + "1998633/pexels-photo-1998633.jpeg",
			Available: true, Ingredients: []string{"Chocolate", "Sorvete baunilha"}, PrepMinutes: 15,
		},
		{
			ID: "13", Name: "Tiramisu",
			Description: "Sobremesa italiana tradicional com café e mascarpone",
			Price:       price("14.90"), Category: "Sobremesas", Image: imageBase + "6957461/pexels-photo-6957461.jpeg",
			Available: true, Ingredients: []string{"Mascarpone", "Café", "Cacau"}, PrepMinutes: 5,
		},
	}
}
