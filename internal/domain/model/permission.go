package model

// 権限のcodename。ユーザーにはuser_permissions経由で付与する。
// スーパーユーザーは全権限を持つ扱い。
const (
	PermAddCategory    = "add_category"
	PermChangeCategory = "change_category"
	PermDeleteCategory = "delete_category"

	PermAddProduct    = "add_product"
	PermChangeProduct = "change_product"
	PermDeleteProduct = "delete_product"

	PermViewWishlist   = "view_wishlist"
	PermChangeWishlist = "change_wishlist"

	PermAddOrder    = "add_order"
	PermViewOrder   = "view_order"
	PermChangeOrder = "change_order"
	PermDeleteOrder = "delete_order"

	PermAddStatus    = "add_status"
	PermDeleteStatus = "delete_status"

	PermViewUser = "view_user"
)

var AllPermissions = []string{
	PermAddCategory, PermChangeCategory, PermDeleteCategory,
	PermAddProduct, PermChangeProduct, PermDeleteProduct,
	PermViewWishlist, PermChangeWishlist,
	PermAddOrder, PermViewOrder, PermChangeOrder, PermDeleteOrder,
	PermAddStatus, PermDeleteStatus,
	PermViewUser,
}

type Permission struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Codename string `gorm:"type:varchar(100);not null;uniqueIndex" json:"codename"`
}
