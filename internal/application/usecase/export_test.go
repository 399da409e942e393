package usecase

// SetSuffix reemplaza el generador de sufijos de slug (tests).
func (uc *SubcategoryUseCase) SetSuffix(f func() string) { uc.suffix = f }
