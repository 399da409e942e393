package repository

// Repositories agrupa los repositorios del catálogo atados a una misma transacción.
type Repositories struct {
	Products      ProductRepository
	Categories    CategoryRepository
	Subcategories SubcategoryRepository
}
