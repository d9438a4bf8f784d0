package demoserver

// Seeded fixtures. Ids start at 1 so /posts/1 always exists.

func seedPosts() []Post {
	return []Post{
		{UserID: 1, ID: 1, Title: "sunt aut facere repellat", Body: "quia et suscipit\nsuscipit recusandae"},
		{UserID: 1, ID: 2, Title: "qui est esse", Body: "est rerum tempore vitae\nsequi sint nihil"},
		{UserID: 2, ID: 3, Title: "ea molestias quasi", Body: "et iusto sed quo iure"},
		{UserID: 2, ID: 4, Title: "eum et est occaecati", Body: "ullam et saepe reiciendis"},
	}
}

func seedComments() []Comment {
	return []Comment{
		{PostID: 1, ID: 1, Name: "id labore ex et quam laborum", Email: "Eliseo@gardner.biz", Body: "laudantium enim quasi"},
		{PostID: 1, ID: 2, Name: "quo vero reiciendis", Email: "Jayne_Kuhic@sydney.com", Body: "est natus enim nihil"},
		{PostID: 2, ID: 3, Name: "odio adipisci rerum", Email: "Nikita@garfield.biz", Body: "quia molestiae reprehenderit"},
	}
}

func seedUsers() []User {
	return []User{
		{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
	}
}
