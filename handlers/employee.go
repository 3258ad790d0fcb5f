package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sudheer2002-ui/employeedirbackend/media"
	"github.com/Sudheer2002-ui/employeedirbackend/models"
	"github.com/Sudheer2002-ui/employeedirbackend/repository"
)

const maxUploadMemory = 32 << 20 // 32 MB

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

type EmployeeHandler struct {
	Repo    repository.EmployeeRepository
	Uploads *media.UploadStore
}

func NewEmployeeHandler(repo repository.EmployeeRepository, uploads *media.UploadStore) *EmployeeHandler {
	return &EmployeeHandler{Repo: repo, Uploads: uploads}
}

// employeeForm is the parsed multipart payload. The field names follow the
// frontend's wire format (f_Name, f_Email, ...).
type employeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
	File        *multipart.FileHeader
}

func parseEmployeeForm(r *http.Request) (employeeForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return employeeForm{}, err
	}

	form := employeeForm{
		Name:        r.FormValue("f_Name"),
		Email:       r.FormValue("f_Email"),
		Mobile:      r.FormValue("f_Mobile"),
		Designation: r.FormValue("f_Designation"),
		Gender:      r.FormValue("f_gender"),
	}
	if r.MultipartForm != nil {
		form.Courses = r.MultipartForm.Value["f_Course"]

		if files := r.MultipartForm.File["f_Image"]; len(files) > 0 {
			form.File = files[0]
		}
	}
	return form, nil
}

func (eh *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	form, err := parseEmployeeForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid multipart form: " + err.Error()})
		return
	}

	if form.Name == "" || form.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing required fields: f_Name and f_Email"})
		return
	}
	if form.Mobile != "" && !mobilePattern.MatchString(form.Mobile) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Mobile number must be exactly 10 digits."})
		return
	}

	imagePath, err := eh.Uploads.Resolve(nil, form.File)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Please upload an image file."})
			return
		}
		log.Printf("Error storing uploaded image: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	emp := &models.Employee{
		ImagePath:   imagePath,
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
	}

	if err := eh.Repo.Create(r.Context(), emp); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "An employee with this id or email already exists."})
			return
		}
		log.Printf("Error creating employee '%s': %v", form.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Employee added successfully.", "id": emp.ID})
}

func (eh *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := eh.Repo.ListAll(r.Context())
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (eh *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	emp, err := eh.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found."})
			return
		}
		log.Printf("Error getting employee %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, emp)
}

func (eh *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	form, err := parseEmployeeForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid multipart form: " + err.Error()})
		return
	}
	if form.Mobile != "" && !mobilePattern.MatchString(form.Mobile) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Mobile number must be exactly 10 digits."})
		return
	}

	// the current row is read before resolving the image so an update
	// without a new file keeps the stored path; the full-row replacement
	// below is last-write-wins
	existing, err := eh.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found."})
			return
		}
		log.Printf("Error loading employee %d for update: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	imagePath, err := eh.Uploads.Resolve(existing.ImagePath, form.File)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Please upload an image file."})
			return
		}
		log.Printf("Error storing uploaded image for employee %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	upd := models.EmployeeUpdate{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
		ImagePath:   imagePath,
	}

	if err := eh.Repo.Update(r.Context(), id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found."})
		case errors.Is(err, repository.ErrDuplicateKey):
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "An employee with this email already exists."})
		default:
			log.Printf("Error updating employee %d: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee updated successfully."})
}

func (eh *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	if err := eh.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found."})
			return
		}
		log.Printf("Error deleting employee %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully."})
}

func employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid employee ID format"})
		return 0, false
	}
	return id, true
}
