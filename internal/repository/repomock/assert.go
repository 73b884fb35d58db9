package repomock

import (
	repo "ninjashop/internal/repository"
)

// コンパイル時にinterfaceを満たしているか確認
var (
	_ repo.TransactionManager  = (*TxManagerMock)(nil)
	_ repo.TxRepos             = (*TxRepos)(nil)
	_ repo.CategoryRepository  = (*CategoryRepoMock)(nil)
	_ repo.ProductRepository   = (*ProductRepoMock)(nil)
	_ repo.WishlistRepository  = (*WishlistRepoMock)(nil)
	_ repo.OrderRepository     = (*OrderRepoMock)(nil)
	_ repo.OrderItemRepository = (*OrderItemRepoMock)(nil)
	_ repo.StatusRepository    = (*StatusRepoMock)(nil)
	_ repo.AuditLogRepository  = (*AuditLogRepoMock)(nil)
	_ repo.UserRepository      = (*UserRepoMock)(nil)
	_ repo.SessionRepository   = (*SessionRepoMock)(nil)
)
