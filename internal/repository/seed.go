package repository

import "github.com/cloud-wave-best-zizon/till-service/internal/domain"

func SeedUsers() []domain.User {
	return []domain.User{
		{ID: "U1", Name: "Administrateur", PIN: "1234", Role: domain.RoleAdmin},
		{ID: "U2", Name: "Caissier 1", PIN: "0000", Role: domain.RoleStaff},
	}
}

func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: "P001", Name: "Ecouteurs Bluetooth", Stock: 12, Price: 3500, Category: "High-Tech"},
		{ID: "P002", Name: "Câble USB Type-C", Stock: 25, Price: 1500, Category: "High-Tech"},
		{ID: "P003", Name: "Clé USB 32GB", Stock: 4, Price: 4500, Category: "Stockage"},
		{ID: "P004", Name: "Rame Papier A4", Stock: 3, Price: 3500, Category: "Bureautique"},
		{ID: "P005", Name: "Stylo Bleu", Stock: 50, Price: 100, Category: "Bureautique"},
	}
}

func SeedServices() []domain.ServiceDefinition {
	return []domain.ServiceDefinition{
		{ID: "S1", Name: "Photocopie N&B", Price: 50, Category: domain.ServiceCategoryOffice},
		{ID: "S2", Name: "Photocopie Couleur", Price: 100, Category: domain.ServiceCategoryOffice},
		{ID: "S3", Name: "Impression", Price: 100, Category: domain.ServiceCategoryOffice},
		{ID: "S4", Name: "Plastification", Price: 500, Category: domain.ServiceCategoryOffice},
		{ID: "S5", Name: "Reliure", Price: 1000, Category: domain.ServiceCategoryOffice},
		{ID: "S6", Name: "Scanner", Price: 200, Category: domain.ServiceCategoryOffice},
		{ID: "S7", Name: "Photo Identité", Price: 2000, Category: domain.ServiceCategoryOffice},
	}
}
