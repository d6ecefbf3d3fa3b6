package catalogControllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{"categories": categories})
}

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.Category{Name: reqData.Name, Description: reqData.Description}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func UpdateCategory(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", entryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.Name = reqData.Name
	category.Description = reqData.Description
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

func DeleteCategory(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)

	res := database.Database.Db.Model(&models.Category{}).
		Where("id = ? AND is_deleted = ?", entryID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

func ListAreas(c *fiber.Ctx) error {
	q := database.Database.Db.Where("is_deleted = ?", false)
	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var areas []models.Area
	if err := q.Order("name ASC").Find(&areas).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch areas!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Areas fetched successfully!", fiber.Map{"areas": areas})
}

func CreateArea(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ParentID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	area := models.Area{CategoryID: reqData.ParentID, Name: reqData.Name, Description: reqData.Description}
	if err := database.Database.Db.Create(&area).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create area!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Area created successfully!", area)
}

func UpdateArea(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var area models.Area
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", entryID, false).First(&area).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Area not found!", nil)
	}

	area.Name = reqData.Name
	area.Description = reqData.Description
	if err := database.Database.Db.Save(&area).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update area!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Area updated successfully!", area)
}

func DeleteArea(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)

	res := database.Database.Db.Model(&models.Area{}).
		Where("id = ? AND is_deleted = ?", entryID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete area!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Area not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Area deleted successfully!", nil)
}

func ListTopics(c *fiber.Ctx) error {
	q := database.Database.Db.Where("is_deleted = ?", false)
	if areaID := c.QueryInt("area_id"); areaID > 0 {
		q = q.Where("area_id = ?", areaID)
	}
	var topics []models.Topic
	if err := q.Order("name ASC").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topics fetched successfully!", fiber.Map{"topics": topics})
}

func CreateTopic(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var area models.Area
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ParentID, false).First(&area).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Area not found!", nil)
	}

	topic := models.Topic{AreaID: reqData.ParentID, Name: reqData.Name, Description: reqData.Description}
	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully!", topic)
}

func UpdateTopic(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)
	reqData, ok := c.Locals("validatedEntry").(*catalogValidator.CatalogEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var topic models.Topic
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", entryID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	topic.Name = reqData.Name
	topic.Description = reqData.Description
	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully!", topic)
}

func DeleteTopic(c *fiber.Ctx) error {
	entryID := c.Locals("entryID").(uint)

	res := database.Database.Db.Model(&models.Topic{}).
		Where("id = ? AND is_deleted = ?", entryID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete topic!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic deleted successfully!", nil)
}
