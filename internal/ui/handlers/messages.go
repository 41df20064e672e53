// messages.go — тексты баннеров панели. Английский текст служит
// ключом каталога переводов.
package handlers

// Ошибки загрузки и сохранения.
const (
	msgLoadData          = "Failed to load data"
	msgLoadProfile       = "Failed to load profile"
	msgSaveData          = "Failed to save data"
	msgSaveBlog          = "Failed to save blog"
	msgSaveItem          = "Failed to save item"
	msgSaveProduct       = "Failed to save product"
	msgSaveBrand         = "Failed to save brand"
	msgSaveCategory      = "Failed to save category"
	msgSaveDivision      = "Failed to save division"
	msgSaveAdmin         = "Failed to save admin"
	msgUpdateProfile     = "Failed to update profile"
	msgFetchUnused       = "Failed to fetch unused files"
	msgDeleteUnused      = "Failed to delete unused files"
	msgReorder           = "Failed to reorder items"
	msgInvalidPrice      = "Price must be a valid number"
	msgDraftExpired      = "The form has expired, please start again"
	msgBadRequest        = "Invalid request"
	msgNoFile            = "Choose a file to upload"
	msgFileTooLarge      = "The file is too large"
	msgDeleteBlog        = "Failed to delete blog"
	msgDeleteItem        = "Failed to delete item"
	msgDeleteProduct     = "Failed to delete product"
	msgDeleteBrand       = "Failed to delete brand"
	msgDeleteCategory    = "Failed to delete category"
	msgDeleteDivision    = "Failed to delete division"
	msgDeleteAdmin       = "Failed to delete admin"
	msgToggleStatus      = "Failed to toggle status"
	msgTogglePublish     = "Failed to toggle publish status"
	msgToggleFeatured    = "Failed to toggle featured status"
	msgUpdateLicense     = "Failed to update license"
	msgFilesNothingToDel = "There are no unused files"
	msgUploadInProgress  = "Please wait until the image upload finishes"
)

// Успешные действия.
const (
	msgDataSaved       = "Data saved successfully!"
	msgBlogSaved       = "Blog saved successfully"
	msgBlogDeleted     = "Blog deleted successfully"
	msgNewsSaved       = "News saved successfully"
	msgItemSaved       = "Item saved successfully"
	msgItemDeleted     = "Item deleted successfully"
	msgProductSaved    = "Product saved successfully"
	msgProductDeleted  = "Product deleted successfully"
	msgBrandCreated    = "Brand created successfully"
	msgBrandUpdated    = "Brand updated successfully"
	msgBrandDeleted    = "Brand deleted successfully"
	msgCategoryCreated = "Category created successfully"
	msgCategoryUpdated = "Category updated successfully"
	msgCategoryDeleted = "Category deleted successfully"
	msgDivisionSaved   = "Division saved successfully"
	msgDivisionDeleted = "Division deleted successfully"
	msgAdminCreated    = "Admin created successfully"
	msgAdminUpdated    = "Admin updated successfully"
	msgAdminDeleted    = "Admin deleted successfully"
	msgLicenseEnabled  = "Admin license enabled"
	msgLicenseDisabled = "Admin license disabled"
	msgProfileUpdated  = "Profile updated successfully!"
	msgLoggedOut       = "You have been logged out"
)

// Вопросы подтверждения.
const (
	askDeleteBlog     = "Are you sure you want to delete this blog?"
	askDeleteItem     = "Are you sure you want to delete this item?"
	askDeleteProduct  = "Are you sure you want to delete this product?"
	askDeleteBrand    = "Are you sure you want to delete this brand? This may affect existing products."
	askDeleteCategory = "Are you sure you want to delete this category? This may affect existing products."
	askDeleteDivision = "Are you sure you want to delete this division?"
	askDeleteAdmin    = "Are you sure you want to delete this admin?"
	askDeleteUnused   = "Are you sure you want to delete %d unused images?"
)
